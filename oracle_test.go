package rex

import (
	"regexp"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/require"
)

// Patterns below stay inside the shared dialect: ASCII input, no \s
// (whose range differs between engines), no $ against trailing
// newlines. Both oracles use leftmost first-preference semantics.
var oracleCases = []struct {
	pattern string
	inputs  []string
}{
	{`abc`, []string{"abc", "xabcy", "ab", ""}},
	{`a+b`, []string{"aaab", "b", "ab", "aa"}},
	{`a*`, []string{"", "aaa", "baa"}},
	{`a?b?c`, []string{"abc", "c", "bc", "ac", "x"}},
	{`a|ab|abc`, []string{"abc", "ab", "a", "x"}},
	{`(a+)(b+)`, []string{"aabb", "ab", "ba", "aab"}},
	{`(a(b)c)d`, []string{"abcd", "abc", "xabcdx"}},
	{`[a-f]+`, []string{"deadbeef", "ghij", "xxcafexx"}},
	{`[^0-9]+`, []string{"abc123", "123", "12ab34"}},
	{`\d{2,4}`, []string{"1", "12", "12345", "x1234x"}},
	{`colou?r`, []string{"color", "colour", "colr"}},
	{`(ab|cd)+`, []string{"ababcd", "cd", "ac", "abcdab"}},
	{`a.c`, []string{"abc", "axc", "ac", "aXc"}},
	{`^start`, []string{"start here", "no start"}},
	{`end$`, []string{"the end", "end of it"}},
	{`a{3}`, []string{"aa", "aaa", "aaaa"}},
	{`(x*)(y*)`, []string{"xxyy", "yy", "xx", "zz"}},
	{`\w+-\w+`, []string{"foo-bar", "foo bar", "a-b-c"}},
	{`a+?b`, []string{"aaab", "ab"}},
	{`(a|b)*c`, []string{"ababc", "c", "abab"}},
}

func TestAgainstStdlib(t *testing.T) {
	for _, oc := range oracleCases {
		mine := MustCompile(oc.pattern)
		std := regexp.MustCompile(oc.pattern)
		for _, input := range oc.inputs {
			m := mine.FindString(input)
			loc := std.FindStringIndex(input)
			if loc == nil {
				require.Nil(t, m, "pattern %q input %q: stdlib says no match", oc.pattern, input)
				continue
			}
			require.NotNil(t, m, "pattern %q input %q: stdlib matched %v", oc.pattern, input, loc)
			require.Equal(t, loc[0], m.Start(), "pattern %q input %q", oc.pattern, input)
			require.Equal(t, loc[1], m.End(), "pattern %q input %q", oc.pattern, input)
		}
	}
}

func TestAgainstRegexp2(t *testing.T) {
	for _, oc := range oracleCases {
		mine := MustCompile(oc.pattern)
		oracle := regexp2.MustCompile(oc.pattern, regexp2.None)
		for _, input := range oc.inputs {
			m := mine.FindString(input)
			om, err := oracle.FindStringMatch(input)
			require.NoError(t, err)
			if om == nil {
				require.Nil(t, m, "pattern %q input %q: oracle says no match", oc.pattern, input)
				continue
			}
			require.NotNil(t, m, "pattern %q input %q: oracle matched", oc.pattern, input)
			require.Equal(t, om.Index, m.Start(), "pattern %q input %q", oc.pattern, input)
			require.Equal(t, om.String(), m.String(), "pattern %q input %q", oc.pattern, input)

			// Group spans must agree as well.
			groups := om.Groups()
			require.Equal(t, len(groups)-1, m.GroupCount(),
				"pattern %q: group count", oc.pattern)
			for i := 1; i < len(groups); i++ {
				text, set := m.Group(i)
				if len(groups[i].Captures) == 0 {
					require.False(t, set, "pattern %q input %q group %d", oc.pattern, input, i)
					continue
				}
				require.True(t, set, "pattern %q input %q group %d", oc.pattern, input, i)
				require.Equal(t, groups[i].String(), text,
					"pattern %q input %q group %d", oc.pattern, input, i)
			}
		}
	}
}

func TestAgainstStdlibICase(t *testing.T) {
	cases := []struct {
		pattern string
		inputs  []string
	}{
		{`hello`, []string{"HELLO", "Hello", "hell"}},
		{`[a-z]+`, []string{"ABC", "aBc", "123"}},
		{`foo(bar)?`, []string{"FOOBAR", "Foo", "fOoBaR"}},
	}
	for _, oc := range cases {
		mine := MustCompile(oc.pattern, "icase")
		std := regexp.MustCompile(`(?i)` + oc.pattern)
		for _, input := range oc.inputs {
			m := mine.FindString(input)
			loc := std.FindStringIndex(input)
			if loc == nil {
				require.Nil(t, m, "pattern %q input %q", oc.pattern, input)
				continue
			}
			require.NotNil(t, m, "pattern %q input %q", oc.pattern, input)
			require.Equal(t, loc[0], m.Start(), "pattern %q input %q", oc.pattern, input)
			require.Equal(t, loc[1], m.End(), "pattern %q input %q", oc.pattern, input)
		}
	}
}
