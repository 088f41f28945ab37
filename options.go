package rex

import (
	"github.com/fossillogic/rex/vm"
)

// Flags is the resolved option bitmask. Re-exported from the vm
// package so callers rarely need to import it directly.
type Flags = vm.Flags

// Option bits, combinable with |.
const (
	// FlagICase matches ASCII letters case-insensitively.
	FlagICase = vm.FlagICase

	// FlagMultiline makes ^ and $ also match at '\n' boundaries.
	FlagMultiline = vm.FlagMultiline

	// FlagDotAll makes '.' match '\n'.
	FlagDotAll = vm.FlagDotAll

	// FlagUngreedy makes quantifiers lazy by default; a trailing '?'
	// then selects the greedy variant.
	FlagUngreedy = vm.FlagUngreedy

	// FlagAnchored restricts search to the start of the subject.
	FlagAnchored = vm.FlagAnchored
)

// optionTable maps option identifiers to bits. Read-only after init.
var optionTable = map[string]Flags{
	"icase":     FlagICase,
	"multiline": FlagMultiline,
	"dotall":    FlagDotAll,
	"ungreedy":  FlagUngreedy,
	"anchored":  FlagAnchored,
}

// ResolveOptions maps option identifiers to a bitmask. Unrecognized
// identifiers are silently ignored so that option lists written for
// newer engine versions still resolve.
func ResolveOptions(ids ...string) Flags {
	var mask Flags
	for _, id := range ids {
		mask |= optionTable[id]
	}
	return mask
}
