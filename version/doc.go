// Package version reports build metadata for the foldkit binary.
//
// Values are set at link time and fall back to what the Go toolchain
// records in the binary:
//
//	go build -ldflags "-X github.com/kbukum/foldkit/version.Version=1.2.0" ./cmd/foldkit
package version
