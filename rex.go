// Package rex provides a small byte-oriented pattern matching engine.
//
// A pattern is compiled once into an immutable bytecode program and
// can then be matched many times, concurrently if desired. Matching
// is backtracking with leftmost, first-alternative-wins semantics and
// a per-attempt step budget, so pathological patterns degrade to a
// non-match instead of hanging.
//
// Options are string identifiers resolved at compile time:
//
//	re, err := rex.Compile(`(\w+)@(\w+)`, "icase")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m := re.FindString("User@Example"); m != nil {
//	    user, _ := m.Group(1)
//	    fmt.Println(user) // "User"
//	}
//
// Supported identifiers: "icase", "multiline", "dotall", "ungreedy",
// "anchored". Unknown identifiers are ignored.
package rex

import (
	"github.com/fossillogic/rex/prefilter"
	"github.com/fossillogic/rex/syntax"
	"github.com/fossillogic/rex/vm"
)

// Regex is a compiled pattern. Immutable and safe for concurrent use:
// every Match/Find call allocates its own machine state.
type Regex struct {
	pattern string
	prog    *vm.Program
	pf      prefilter.Prefilter
	config  Config
}

// Compile compiles a pattern with the given option identifiers.
func Compile(pattern string, options ...string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig(), options...)
}

// MustCompile is Compile that panics on error, for patterns known to
// be valid at program start.
func MustCompile(pattern string, options ...string) *Regex {
	re, err := Compile(pattern, options...)
	if err != nil {
		panic("rex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom engine tunables.
func CompileWithConfig(pattern string, config Config, options ...string) (*Regex, error) {
	if config.MaxSteps <= 0 {
		config.MaxSteps = vm.DefaultMaxSteps
	}
	flags := ResolveOptions(options...)
	parsed, err := syntax.ParseWithDepth(pattern, config.MaxParseDepth)
	if err != nil {
		return nil, err
	}
	prog, err := vm.Compile(parsed, flags)
	if err != nil {
		return nil, err
	}
	re := &Regex{pattern: pattern, prog: prog, config: config}
	if !config.NoPrefilter {
		re.pf = prefilter.FromPattern(parsed, flags)
	}
	return re, nil
}

// Pattern returns the source pattern text.
func (re *Regex) Pattern() string {
	return re.pattern
}

// Flags returns the resolved option bitmask.
func (re *Regex) Flags() Flags {
	return re.prog.Flags()
}

// NumCaps returns the capture group count including group 0, the
// whole match. Every Match produced by this Regex reports the same
// count.
func (re *Regex) NumCaps() int {
	return re.prog.NumCaps()
}

// Program returns the compiled bytecode, for inspection tooling.
func (re *Regex) Program() *vm.Program {
	return re.prog
}

// Match reports whether the pattern matches anywhere in text.
func (re *Regex) Match(text []byte) bool {
	_, _, ok := re.find(text)
	return ok
}

// MatchString reports whether the pattern matches anywhere in s.
func (re *Regex) MatchString(s string) bool {
	return re.Match([]byte(s))
}

// Find runs a leftmost search over text and returns the match, or nil
// when there is none. The result owns independent copies of the
// matched text and captured groups; it stays valid after text is
// modified or discarded.
func (re *Regex) Find(text []byte) *Match {
	_, slots, ok := re.find(text)
	if !ok {
		return nil
	}
	return newMatch(text, slots)
}

// FindString is Find over a string subject.
func (re *Regex) FindString(s string) *Match {
	return re.Find([]byte(s))
}

// find runs the search, feeding candidate offsets from the prefilter
// when one exists. The prefilter only skips offsets at which no match
// can begin, so results are identical with and without it.
func (re *Regex) find(text []byte) (int, []int, bool) {
	if re == nil || re.prog == nil {
		return -1, nil, false
	}
	bt := vm.NewBacktracker(re.prog, re.config.MaxSteps)
	if re.prog.Flags()&vm.FlagAnchored != 0 {
		if bt.FindAt(text, 0) {
			return 0, bt.Slots(), true
		}
		return -1, nil, false
	}
	for at := 0; at <= len(text); at++ {
		if re.pf != nil {
			at = re.pf.Find(text, at)
			if at < 0 {
				return -1, nil, false
			}
		}
		if bt.FindAt(text, at) {
			return at, bt.Slots(), true
		}
	}
	return -1, nil, false
}

// QuoteMeta escapes pattern metacharacters in s, yielding a pattern
// that matches s literally.
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
