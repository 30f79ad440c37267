// Package version works out which version string to report.
package version

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Unknown is reported when no source yields a version
const Unknown = "unknown"

// buildEnv holds the build-time override read from the environment
type buildEnv struct {
	Version string `env:"SKIPBOI_VERSION"`
}

// Resolve picks the version in order of precedence: SKIPBOI_VERSION,
// the ldflags value when it is not "dev", the latest git tag, Unknown.
// Call it once at startup and pass the result around.
func Resolve(ldflags string) string {
	var e buildEnv
	if err := env.Parse(&e); err == nil && e.Version != "" {
		return e.Version
	}

	if ldflags != "" && ldflags != "dev" {
		return ldflags
	}

	if tag := gitTag(); tag != "" {
		return tag
	}

	return Unknown
}

// gitTag returns the most recent tag when run from a checkout
func gitTag() string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
