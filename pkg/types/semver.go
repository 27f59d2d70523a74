// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidSemVer is the sentinel error wrapped by InvalidSemVerError.
var ErrInvalidSemVer = errors.New("invalid semver")

// semverRegex matches strict three-component semantic version strings with an
// optional "v" prefix and optional prerelease/build suffixes.
var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z\-.]+))?(?:\+([0-9A-Za-z\-.]+))?$`)

type (
	// SemVer represents a concrete semantic version string (e.g. "1.0.0",
	// "2.3.4-alpha.1"). Validation delegates to ParseVersion.
	SemVer string

	// InvalidSemVerError is returned when a SemVer value does not match the
	// expected semantic version format.
	InvalidSemVerError struct {
		Value SemVer
	}

	// Version represents a parsed semantic version.
	Version struct {
		Major      int
		Minor      int
		Patch      int
		Prerelease string
	}
)

// ParseVersion parses a version string into a Version struct. Unlike looser
// parsers, all three numeric components are required: version records are
// machine-written, so a missing component indicates corruption, not shorthand.
func ParseVersion(s string) (Version, error) {
	matches := semverRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, &InvalidSemVerError{Value: SemVer(s)}
	}

	var (
		v   Version
		err error
	)
	if v.Major, err = strconv.Atoi(matches[1]); err != nil {
		return Version{}, fmt.Errorf("invalid major version: %w", err)
	}
	if v.Minor, err = strconv.Atoi(matches[2]); err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %w", err)
	}
	if v.Patch, err = strconv.Atoi(matches[3]); err != nil {
		return Version{}, fmt.Errorf("invalid patch version: %w", err)
	}
	v.Prerelease = matches[4]

	return v, nil
}

// String returns the canonical "major.minor.patch[-prerelease]" form.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// SemVer returns the canonical string form as a SemVer value.
func (v Version) SemVer() SemVer { return SemVer(v.String()) }

// NextMajor returns the version with the major component incremented and
// minor/patch reset to zero. Any prerelease suffix is dropped.
func (v Version) NextMajor() Version {
	return Version{Major: v.Major + 1}
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	// Prerelease versions have lower precedence than the release proper.
	if v.Prerelease == "" && other.Prerelease != "" {
		return 1
	}
	if v.Prerelease != "" && other.Prerelease == "" {
		return -1
	}
	if v.Prerelease != other.Prerelease {
		if v.Prerelease < other.Prerelease {
			return -1
		}
		return 1
	}

	return 0
}

// String returns the string representation of the SemVer.
func (s SemVer) String() string { return string(s) }

// IsValid returns whether the SemVer is a valid semantic version string,
// and a list of validation errors if it is not.
func (s SemVer) IsValid() (bool, []error) {
	if _, err := ParseVersion(string(s)); err != nil {
		return false, []error{&InvalidSemVerError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSemVerError.
func (e *InvalidSemVerError) Error() string {
	return fmt.Sprintf("invalid semver %q", e.Value)
}

// Unwrap returns ErrInvalidSemVer for errors.Is() compatibility.
func (e *InvalidSemVerError) Unwrap() error { return ErrInvalidSemVer }
