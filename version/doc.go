// Package version reports the reqkit build version.
//
// Version, GitCommit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/reqkit/version.Version=1.2.0" ./cmd/reqkit
//
// Unset values fall back to the VCS stamps the Go toolchain embeds.
package version
