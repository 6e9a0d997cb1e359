// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC health client wrapper with call timeouts.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
