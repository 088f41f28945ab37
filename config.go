package rex

import (
	"github.com/fossillogic/rex/syntax"
	"github.com/fossillogic/rex/vm"
)

// Config carries engine tunables. The zero value of any field selects
// its default.
type Config struct {
	// MaxSteps bounds instruction executions per match attempt.
	// Exhaustion abandons the attempt as a non-match for that start
	// offset; it is never reported as an error. Default 1_000_000.
	MaxSteps int

	// MaxParseDepth bounds group nesting in patterns. Default 100.
	MaxParseDepth int

	// NoPrefilter disables literal candidate filtering. Results are
	// identical either way; the switch exists for benchmarking and
	// for ruling the prefilter out when debugging.
	NoPrefilter bool
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		MaxSteps:      vm.DefaultMaxSteps,
		MaxParseDepth: syntax.DefaultMaxDepth,
	}
}
