// Package window decides whether the weekly pause window is open.
//
// Evaluate is a pure function of the current instant, the configured
// triggers and the two solar event times: it never reads the clock itself.
package window
