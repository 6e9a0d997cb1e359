// Package server runs the long-lived sidecar: a gRPC health endpoint whose
// "shabbat" service is NOT_SERVING while agents must stay paused.
package server
