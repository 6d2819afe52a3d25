// Package trueke exposes release metadata for the trueke table toolkit.
package trueke

import (
	_ "embed"
	"regexp"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var releaseFile string

// semver 2.0.0 without a leading v.
var semverPattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

// Version returns the release version, e.g. "0.1.0".
func Version() string { return strings.TrimSpace(releaseFile) }

// VersionTag returns Version as a git tag.
func VersionTag() string { return "v" + Version() }

// IsSemver reports whether v is a SemVer 2.0.0 version without the v prefix.
func IsSemver(v string) bool { return semverPattern.MatchString(strings.TrimSpace(v)) }

// BuildString is Version followed by the short VCS revision of the running
// binary, when the toolchain recorded one.
func BuildString() string {
	v := Version()
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	return v + revisionSuffix(info.Settings)
}

func revisionSuffix(settings []debug.BuildSetting) string {
	var rev string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return ""
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if dirty {
		rev += ".dirty"
	}
	return "+" + rev
}
