// Package probe asks a running sidecar whether the window is open and
// reports it with the same output and exit codes as the one-shot check.
package probe
