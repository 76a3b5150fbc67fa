// Package version carries the build identity stamped into the binary and
// into every generated declaration file.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags "-X github.com/teranos/dojodts/version.Version=...".
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Release names the build: the tagged version, or "dev-" plus the
// abbreviated commit for untagged builds.
func (i Info) Release() string {
	if i.Version != "dev" {
		return i.Version
	}
	commit := i.CommitHash
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return "dev-" + commit
}

// Banner returns the first line written to every generated declaration
// file. It carries no timestamp so regenerating unchanged input is a no-op.
func (i Info) Banner(apiVersion string) string {
	return fmt.Sprintf("// Generated by dojodts %s from the %s API documentation. Do not edit.\n", i.Release(), apiVersion)
}
