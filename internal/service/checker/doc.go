// Package checker runs the one-shot pipeline: locate and read SHABBAT.md,
// honor the life-safety override, resolve the location, compute today's
// solar events, evaluate the window and write the report.
//
// Evaluate is shared with the times and server services, which render or
// publish the same evaluation differently.
package checker
