// Package rule loads named pattern rules from YAML files so that
// tooling can apply a whole set of compiled patterns at once.
package rule

import (
	"errors"
	"fmt"

	rex "github.com/fossillogic/rex"
)

var (
	// ErrNoRules indicates a rules document with an empty rules list.
	ErrNoRules = errors.New("no rules found")

	// ErrMissingID indicates a rule without an id.
	ErrMissingID = errors.New("rule missing id")

	// ErrMissingPattern indicates a rule without a pattern.
	ErrMissingPattern = errors.New("rule missing pattern")
)

// Rule is one named pattern with its option identifiers and optional
// self-test corpus.
type Rule struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name,omitempty"`
	Pattern string   `yaml:"pattern"`
	Options []string `yaml:"options,omitempty"`

	// Examples must match the pattern; NegativeExamples must not.
	// SelfTest checks both.
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// Validate checks structural fields without compiling the pattern.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule %s: %w", r.ID, ErrMissingPattern)
	}
	return nil
}

// Compile compiles the rule's pattern with its options.
func (r *Rule) Compile() (*rex.Regex, error) {
	re, err := rex.Compile(r.Pattern, r.Options...)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.ID, err)
	}
	return re, nil
}

// SelfTest compiles the rule and checks its example corpus: every
// example must match and every negative example must not.
func (r *Rule) SelfTest() error {
	re, err := r.Compile()
	if err != nil {
		return err
	}
	for _, ex := range r.Examples {
		if !re.MatchString(ex) {
			return fmt.Errorf("rule %s: example %q does not match", r.ID, ex)
		}
	}
	for _, ex := range r.NegativeExamples {
		if re.MatchString(ex) {
			return fmt.Errorf("rule %s: negative example %q matches", r.ID, ex)
		}
	}
	return nil
}

// Compiled pairs a rule with its compiled pattern.
type Compiled struct {
	Rule  Rule
	Regex *rex.Regex
}

// CompileAll validates and compiles every rule, failing on the first
// broken one.
func CompileAll(rules []Rule) ([]Compiled, error) {
	out := make([]Compiled, 0, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		re, err := r.Compile()
		if err != nil {
			return nil, err
		}
		out = append(out, Compiled{Rule: r, Regex: re})
	}
	return out, nil
}
