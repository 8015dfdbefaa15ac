// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in                  string
		major, minor, patch int
		qualifier           string
	}{
		{"3.2.4", 3, 2, 4, ""},
		{"3.3.0-rc1", 3, 3, 0, "rc1"},
		{"3.4.0.preview2", 3, 4, 0, "preview2"},
		{"  3.1.0\n", 3, 1, 0, ""},
		{"10.0.1", 10, 0, 1, ""},
	}

	for _, tc := range cases {
		v, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.in, err)
			continue
		}
		if v.Major != tc.major || v.Minor != tc.minor || v.Patch != tc.patch {
			t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d",
				tc.in, v.Major, v.Minor, v.Patch, tc.major, tc.minor, tc.patch)
		}
		if v.Qualifier != tc.qualifier {
			t.Errorf("Parse(%q) qualifier = %q, want %q", tc.in, v.Qualifier, tc.qualifier)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "3.2", "3", "ruby-3.2.4", "3.2.x", "a.b.c", "3..4"} {
		_, err := Parse(in)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
			continue
		}
		if !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("Parse(%q) error should wrap ErrInvalidVersion, got: %v", in, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error should be *ParseError, got %T", in, err)
		}
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	t.Parallel()

	// Ascending chain including qualifier tie-breaks.
	ordered := []string{"1.2.0", "1.2.1", "1.3.0", "2.0.0", "3.2.0", "3.2.0-rc1", "3.2.0-rc2"}

	for i, a := range ordered {
		for j, b := range ordered {
			got := MustParse(a).Compare(MustParse(b))
			want := cmpInt(i, j)
			if got != want {
				t.Errorf("Compare(%s, %s) = %d, want %d", a, b, got, want)
			}
			// Antisymmetry.
			if rev := MustParse(b).Compare(MustParse(a)); rev != -got {
				t.Errorf("Compare(%s, %s) = %d, not antisymmetric with %d", b, a, rev, got)
			}
		}
	}
}

func TestCompare_ReleaseSortsBeforeQualified(t *testing.T) {
	t.Parallel()

	// Raw qualifier collation: documented deviation from semver precedence.
	release := MustParse("3.2.0")
	rc := MustParse("3.2.0-rc1")
	if release.Compare(rc) >= 0 {
		t.Errorf("expected %s < %s under raw qualifier collation", release, rc)
	}
}

func TestString_RoundTripsSource(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"3.2.4", "3.3.0-rc1", "3.4.0.preview2"} {
		if got := MustParse(in).String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}

func TestABI(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"3.3.7": "3.3.0",
		"3.4.5": "3.4.0",
		"2.7.8": "2.7.0",
		"3.3.0": "3.3.0",
	}
	for in, want := range cases {
		if got := MustParse(in).ABI(); got != want {
			t.Errorf("ABI(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	vs := []Version{MustParse("3.2.4"), MustParse("3.4.5"), MustParse("3.0.1")}
	best, ok := Latest(vs)
	if !ok || best.String() != "3.4.5" {
		t.Errorf("Latest = %v, %v; want 3.4.5, true", best, ok)
	}

	if _, ok := Latest(nil); ok {
		t.Error("Latest(nil) should report not found")
	}
}
