// Package semver implements the minimal semantic-version arithmetic needed
// for release bumping: strict "major.minor.patch" parsing, comparison, and
// the three next-version operations.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic version without pre-release or build metadata.
// All components are non-negative.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a strict "major.minor.patch" string. Pre-release suffixes,
// "v" prefixes, and missing components are rejected.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: component %q is not a number", s, part)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("invalid version %q: negative component %q", s, part)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 by the usual semantic-version ordering.
func (v Version) Compare(o Version) int {
	pairs := [][2]int{{v.Major, o.Major}, {v.Minor, o.Minor}, {v.Patch, o.Patch}}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// NextPatch returns the version with patch incremented.
func (v Version) NextPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// NextMinor returns the version with minor incremented and patch reset.
func (v Version) NextMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// NextMajor returns the version with major incremented and minor and patch
// reset.
func (v Version) NextMajor() Version {
	return Version{Major: v.Major + 1}
}
