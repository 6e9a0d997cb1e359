// Package report renders an evaluation for machines and maps it to a
// process exit code.
//
// The default "lines" format is three key=value lines; "yaml" and "json"
// carry the same values plus the resolved location and the window phase.
package report
