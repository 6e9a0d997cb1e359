// Package version exposes build metadata of shabbat-check.
//
// Version, Commit and BuildTime are injected with -ldflags -X; without them
// Short falls back to the module version recorded by the Go toolchain.
package version
