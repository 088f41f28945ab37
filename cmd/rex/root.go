package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "rex",
	Short: "rex - bytecode pattern matcher",
	Long: `rex compiles regex-like patterns into bytecode programs and runs them
against text with a bounded-backtracking machine.

Pattern options map to the engine's option identifiers: case-insensitive
matching, multiline anchors, dot-matches-newline, default-lazy quantifiers
and anchored-only search.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(grepCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// optionFlags is the per-command set of engine option switches.
type optionFlags struct {
	icase     bool
	multiline bool
	dotall    bool
	ungreedy  bool
	anchored  bool
}

// register adds the option switches to a command.
func (o *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.icase, "icase", "i", false, "Case-insensitive matching")
	cmd.Flags().BoolVarP(&o.multiline, "multiline", "m", false, "^ and $ match at line boundaries")
	cmd.Flags().BoolVarP(&o.dotall, "dotall", "s", false, ". matches newline")
	cmd.Flags().BoolVarP(&o.ungreedy, "ungreedy", "U", false, "Quantifiers are lazy by default")
	cmd.Flags().BoolVar(&o.anchored, "anchored", false, "Match only at the start of input")
}

// identifiers converts the switches to engine option identifiers.
func (o *optionFlags) identifiers() []string {
	var ids []string
	if o.icase {
		ids = append(ids, "icase")
	}
	if o.multiline {
		ids = append(ids, "multiline")
	}
	if o.dotall {
		ids = append(ids, "dotall")
	}
	if o.ungreedy {
		ids = append(ids, "ungreedy")
	}
	if o.anchored {
		ids = append(ids, "anchored")
	}
	return ids
}
