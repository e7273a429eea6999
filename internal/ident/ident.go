// Package ident canonicalizes the product identifier encodings used across
// the storefront: bare integers, digit strings and prefixed slugs such as
// "p-12" or "P_12" all resolve to the same numeric key.
package ident

import (
	"regexp"
	"strconv"

	"github.com/spf13/cast"
)

var slugPattern = regexp.MustCompile(`(?i)^([a-z])[-_]?(\d+)$`)

// Normalize extracts the comparable numeric key from an identifier
// representation. The second return is false when no number can be
// extracted, in which case callers fall back to exact string equality.
func Normalize(v interface{}) (int64, bool) {
	s := cast.ToString(v)
	if m := slugPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Matches reports whether two identifier representations refer to the same
// record: equal normalized keys when both normalize, otherwise identical
// raw string forms. No partial or fuzzy matching.
func Matches(a, b interface{}) bool {
	na, oka := Normalize(a)
	nb, okb := Normalize(b)
	if oka && okb {
		return na == nb
	}
	return cast.ToString(a) == cast.ToString(b)
}
