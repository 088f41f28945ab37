package rex_test

import (
	"fmt"

	rex "github.com/fossillogic/rex"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := rex.Compile(`\d+`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.MatchString("hello 123"))
	// Output: true
}

// ExampleCompile_options demonstrates option identifiers.
func ExampleCompile_options() {
	re, err := rex.Compile(`hello`, "icase")
	if err != nil {
		panic(err)
	}

	fmt.Println(re.MatchString("HELLO world"))
	// Output: true
}

// ExampleRegex_FindString demonstrates finding the first match.
func ExampleRegex_FindString() {
	re := rex.MustCompile(`\d+`)
	m := re.FindString("age: 42 years")
	fmt.Println(m.String(), m.Start(), m.End())
	// Output: 42 5 7
}

// ExampleMatch_Group demonstrates capture group access.
func ExampleMatch_Group() {
	re := rex.MustCompile(`(\w+)@(\w+)`)
	m := re.FindString("mail user@example now")
	user, _ := m.Group(1)
	host, _ := m.Group(2)
	fmt.Println(user, host)
	// Output: user example
}

// ExampleQuoteMeta demonstrates escaping pattern metacharacters.
func ExampleQuoteMeta() {
	fmt.Println(rex.QuoteMeta(`1+1=2`))
	// Output: 1\+1=2
}

// ExampleResolveOptions demonstrates option resolution.
func ExampleResolveOptions() {
	flags := rex.ResolveOptions("icase", "multiline")
	fmt.Println(flags&rex.FlagICase != 0, flags&rex.FlagDotAll != 0)
	// Output: true false
}
