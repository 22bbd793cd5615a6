// Package version provides the lexan version strings.
package version

import (
	_ "embed"
	"runtime"
	"strings"
)

// You can override buildVersion at compile time by using:
//
//	go run -ldflags "-X github.com/buildkite/lexan/version.buildVersion=abc" . --version
//
// Release binaries are always built with buildVersion set.

//go:embed VERSION
var baseVersion string
var buildVersion string

func Version() string {
	return strings.TrimSpace(baseVersion)
}

func BuildVersion() string {
	if buildVersion == "" {
		return "x"
	}
	return buildVersion
}

// FullVersion is the version shown by `lexan --version`.
func FullVersion() string {
	return Version() + "+" + BuildVersion() + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
