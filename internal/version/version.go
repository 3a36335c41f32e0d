// Package version exposes the CLI's build fingerprints.
package version

import (
	"fmt"

	"github.com/fatih/color"
)

const (
	major = "0"
	minor = "1"
	patch = "0"
	pre   = "dev"
)

// Overridable at build time via -ldflags.
var (
	// Version is the semantic version string, tinted per component.
	Version = render()

	// GitCommit is the hash of the commit the binary was built from.
	// Empty for local builds.
	GitCommit = ""

	// BuildDate is the build timestamp in ISO-8601. Empty for local
	// builds.
	BuildDate = ""
)

func render() string {
	return fmt.Sprintf("%s.%s.%s-%s",
		color.New(color.FgYellow, color.Bold).Sprint(major),
		color.New(color.FgGreen, color.Bold).Sprint(minor),
		color.New(color.FgBlue, color.Bold).Sprint(patch),
		pre)
}
