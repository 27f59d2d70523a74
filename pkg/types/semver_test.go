// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{"basic", "1.0.0", Version{Major: 1}, false},
		{"full", "2.3.4", Version{Major: 2, Minor: 3, Patch: 4}, false},
		{"v prefix", "v1.2.3", Version{Major: 1, Minor: 2, Patch: 3}, false},
		{"prerelease", "1.0.0-alpha.1", Version{Major: 1, Prerelease: "alpha.1"}, false},
		{"build metadata ignored", "1.0.0+build.5", Version{Major: 1}, false},
		{"missing patch", "1.0", Version{}, true},
		{"missing minor", "1", Version{}, true},
		{"empty", "", Version{}, true},
		{"garbage", "not-a-version", Version{}, true},
		{"negative", "-1.0.0", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrInvalidSemVer) {
					t.Errorf("error should wrap ErrInvalidSemVer, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_NextMajor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Version
		want Version
	}{
		{"from 1.0.0", Version{Major: 1}, Version{Major: 2}},
		{"resets minor and patch", Version{Major: 2, Minor: 5, Patch: 9}, Version{Major: 3}},
		{"drops prerelease", Version{Major: 1, Prerelease: "rc.1"}, Version{Major: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.in.NextMajor(); got != tt.want {
				t.Errorf("Version(%s).NextMajor() = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Version
		want int
	}{
		{"equal", Version{Major: 1, Minor: 2, Patch: 3}, Version{Major: 1, Minor: 2, Patch: 3}, 0},
		{"major wins", Version{Major: 2}, Version{Major: 1, Minor: 9, Patch: 9}, 1},
		{"minor wins", Version{Major: 1, Minor: 2}, Version{Major: 1, Minor: 1, Patch: 9}, 1},
		{"patch wins", Version{Major: 1, Patch: 1}, Version{Major: 1}, 1},
		{"release beats prerelease", Version{Major: 1}, Version{Major: 1, Prerelease: "rc.1"}, 1},
		{"prerelease ordering", Version{Major: 1, Prerelease: "alpha"}, Version{Major: 1, Prerelease: "beta"}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Compare(tt.a); got != -tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	t.Parallel()

	if got := (Version{Major: 2, Minor: 1, Patch: 7}).String(); got != "2.1.7" {
		t.Errorf("Version.String() = %q, want %q", got, "2.1.7")
	}
	if got := (Version{Major: 1, Prerelease: "rc.2"}).String(); got != "1.0.0-rc.2" {
		t.Errorf("Version.String() = %q, want %q", got, "1.0.0-rc.2")
	}
}

func TestSemVer_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    SemVer
		want bool
	}{
		{"release", SemVer("1.0.0"), true},
		{"prerelease", SemVer("2.0.0-beta"), true},
		{"two components", SemVer("1.0"), false},
		{"empty", SemVer(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.v.IsValid()
			if isValid != tt.want {
				t.Errorf("SemVer(%q).IsValid() = %v, want %v", tt.v, isValid, tt.want)
			}
			if !tt.want {
				if len(errs) == 0 {
					t.Fatalf("SemVer(%q).IsValid() returned no errors, want error", tt.v)
				}
				var svErr *InvalidSemVerError
				if !errors.As(errs[0], &svErr) {
					t.Errorf("error should be *InvalidSemVerError, got: %T", errs[0])
				}
			}
		})
	}
}
