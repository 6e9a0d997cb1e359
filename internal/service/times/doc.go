// Package times prints a human-readable table of today's solar events,
// the window boundaries they produce and how far third-party engines
// disagree with the closed-form calculation.
package times
