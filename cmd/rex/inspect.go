package main

import (
	"fmt"

	"github.com/spf13/cobra"

	rex "github.com/fossillogic/rex"
)

var inspectOptions optionFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect PATTERN",
	Short: "Show the compiled bytecode for a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectOptions.register(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	re, err := rex.Compile(args[0], inspectOptions.identifiers()...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pattern:        %s\n", re.Pattern())
	fmt.Fprintf(out, "capture groups: %d\n", re.NumCaps()-1)
	fmt.Fprintf(out, "instructions:   %d\n\n", re.Program().Len())
	fmt.Fprint(out, re.Program().Disassemble())
	return nil
}
