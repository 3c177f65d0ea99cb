// Package version reports the build version of the xkcd commands.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/vrsandeep/xkcd-go/internal/version.Version=1.2.0"
var Version = "dev"

// String returns Version as a normalized "vX.Y.Z" when it is a valid
// semantic version, or unchanged otherwise.
func String() string {
	return Normalize(Version)
}

// Normalize formats v as "vX.Y.Z[-pre][+meta]" if it parses as semver.
func Normalize(v string) string {
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return v
	}
	return "v" + parsed.String()
}
