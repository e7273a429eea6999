package ident

import (
	"testing"

	"gotest.tools/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
		ok   bool
	}{
		{12, 12, true},
		{"12", 12, true},
		{"p-12", 12, true},
		{"p_12", 12, true},
		{"P12", 12, true},
		{"x-7", 7, true},
		{"abc", 0, false},
		{"", 0, false},
		{"p-", 0, false},
		{"pp-12", 0, false},
	}
	for _, c := range cases {
		got, ok := Normalize(c.in)
		assert.Equal(t, c.ok, ok)
		if ok {
			assert.Equal(t, c.want, got)
		}
	}
}

func TestMatches(t *testing.T) {
	assert.Assert(t, Matches(12, "p-12"))
	assert.Assert(t, Matches("p_12", "12"))
	assert.Assert(t, Matches("P-3", "p_3"))
	assert.Assert(t, Matches("abc", "abc"))
	assert.Assert(t, !Matches("abc", "abd"))
	assert.Assert(t, !Matches("p-12", "p-13"))
	// a normalizable and a non-normalizable side compare as raw strings
	assert.Assert(t, !Matches("12", "abc"))
}
