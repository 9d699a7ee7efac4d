package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the current version of stock-history.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/stock-history/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// GetVersion returns the current version.
func GetVersion() string {
	return Version
}

// IsDevelopment reports whether v names a development build.
func IsDevelopment(v string) bool {
	v = strings.TrimPrefix(v, "v")

	return v == "" || v == "main"
}

// Display returns v formatted for --version output.
// Release versions are normalized through semver, so "1.2" prints as "v1.2.0".
func Display(v string) (string, error) {
	if IsDevelopment(v) {
		return "main (development build)", nil
	}

	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return "", fmt.Errorf("invalid version '%s': %w", v, err)
	}

	return "v" + parsed.String(), nil
}
