// Package vercmp compares Debian version strings.
//
// Comparison follows dpkg: the epoch is compared numerically, then the
// upstream version and the revision are compared with the alternating
// non-digit/digit algorithm, where '~' sorts before everything (even the
// end of the string) and letters sort before other characters.
//
// Real-world version strings are not always well formed. Compare never
// fails: strings rejected by the strict parser are split on a best-effort
// basis and still ordered deterministically. Use Valid to find out whether
// a string is well formed.
package vercmp

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pault.ag/go/debian/version"
)

// MalformedError reports a version string the strict parser rejected.
type MalformedError struct {
	Version string
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed version %q: %v", e.Version, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Comparator is the Debian ordering as a value. The zero value is ready to use.
type Comparator struct{}

// Compare implements the three-way comparison for Comparator.
func (Comparator) Compare(a, b string) int {
	return Compare(a, b)
}

// Compare returns -1 if a sorts before b, 1 if a sorts after b and 0 if they
// are equal under Debian ordering.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	return sign(version.Compare(parse(a), parse(b)))
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Equal reports whether a and b are equal under Debian ordering. "1.0" and
// "1.00" are equal even though the strings differ.
func Equal(a, b string) bool {
	return Compare(a, b) == 0
}

// Valid returns a *MalformedError if s is not a well-formed Debian version.
func Valid(s string) error {
	if _, err := version.Parse(s); err != nil {
		return &MalformedError{Version: s, Err: err}
	}
	return nil
}

// Sort sorts versions in ascending Debian order. The sort is stable so that
// equal versions keep their input order.
func Sort(versions []string) {
	slices.SortStableFunc(versions, Compare)
}

// Max returns the highest of the given versions, or "" if there are none.
func Max(versions ...string) string {
	if len(versions) == 0 {
		return ""
	}
	return slices.MaxFunc(versions, Compare)
}

// HasEpoch reports whether s carries an explicit epoch.
func HasEpoch(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	_, err := strconv.ParseUint(s[:i], 10, 32)
	return err == nil
}

func parse(s string) version.Version {
	if v, err := version.Parse(s); err == nil {
		return v
	}
	return split(s)
}

// split breaks s into epoch, upstream and revision without validating any
// of the parts. version.Compare is total over arbitrary strings, so the
// result always orders deterministically.
func split(s string) version.Version {
	var v version.Version
	s = strings.TrimSpace(s)

	if i := strings.IndexByte(s, ':'); i >= 0 {
		if epoch, err := strconv.ParseUint(s[:i], 10, 32); err == nil {
			v.Epoch = uint(epoch)
			s = s[i+1:]
		}
	}

	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		v.Version = s[:i]
		v.Revision = s[i+1:]
	} else {
		v.Version = s
	}
	return v
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
