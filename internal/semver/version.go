// Package semver provides the immutable version domain model and the tag
// matcher used to recognize version tags in a repository.
package semver

import (
	"strconv"
	"strings"
)

// Version represents a semantic version triple plus ordered qualifiers.
// This type is immutable; all methods return new values.
type Version struct {
	Major      int64
	Minor      int64
	Patch      int64
	Qualifiers []string
}

// New creates a Version with no qualifiers.
func New(major, minor, patch int64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Base returns the bare "major.minor.patch" form without qualifiers.
func (v Version) Base() string {
	return strconv.FormatInt(v.Major, 10) + "." +
		strconv.FormatInt(v.Minor, 10) + "." +
		strconv.FormatInt(v.Patch, 10)
}

// String returns the full version string, qualifiers joined with '-'.
func (v Version) String() string {
	if len(v.Qualifiers) == 0 {
		return v.Base()
	}
	return v.Base() + "-" + strings.Join(v.Qualifiers, "-")
}

// Compare orders two versions lexicographically on (major, minor, patch).
// Qualifiers do not participate in ordering.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major > other.Major {
			return 1
		}
		return -1
	}
	if v.Minor != other.Minor {
		if v.Minor > other.Minor {
			return 1
		}
		return -1
	}
	if v.Patch != other.Patch {
		if v.Patch > other.Patch {
			return 1
		}
		return -1
	}
	return 0
}

// IncrementPatch bumps the patch component by one. Major and minor are
// preserved, qualifiers are cleared.
func (v Version) IncrementPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// WithQualifiers returns a new Version with the given qualifiers appended
// in order. Empty qualifiers are dropped.
func (v Version) WithQualifiers(qualifiers ...string) Version {
	out := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	out.Qualifiers = append(out.Qualifiers, v.Qualifiers...)
	for _, q := range qualifiers {
		if q != "" {
			out.Qualifiers = append(out.Qualifiers, q)
		}
	}
	return out
}

// IsQualified returns true when the version carries at least one qualifier.
func (v Version) IsQualified() bool {
	return len(v.Qualifiers) > 0
}
