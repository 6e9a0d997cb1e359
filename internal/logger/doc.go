// Package logger wraps zap for the whole binary.
//
// The global logger writes console lines to stderr and defaults to the warn
// level, so a one-shot check prints nothing but its result. Services attach
// their name and fields to a context with WithName and WithKV; the KV helpers
// read the logger back from the context.
package logger
