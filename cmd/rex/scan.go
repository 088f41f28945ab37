package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fossillogic/rex/rule"
)

var (
	scanRulesPath string
	scanSelfTest  bool

	scanRuleStyle  = color.New(color.Bold, color.FgHiBlue)
	scanMatchStyle = color.New(color.FgYellow)
)

var scanCmd = &cobra.Command{
	Use:   "scan [FILE...]",
	Short: "Apply a YAML rule set to files",
	Long: `Load named pattern rules from a YAML file and report every rule that
matches a line of the given files (or standard input).`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanRulesPath, "rules", "r", "", "YAML rules file (required)")
	scanCmd.Flags().BoolVar(&scanSelfTest, "self-test", false, "Check rule examples before scanning")
	_ = scanCmd.MarkFlagRequired("rules")
}

func runScan(cmd *cobra.Command, args []string) error {
	rules, err := rule.LoadFile(scanRulesPath)
	if err != nil {
		return err
	}
	if scanSelfTest {
		for _, r := range rules {
			if err := r.SelfTest(); err != nil {
				return err
			}
		}
	}
	compiled, err := rule.CompileAll(rules)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return scanReader(cmd.OutOrStdout(), "(stdin)", os.Stdin, compiled)
	}
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = scanReader(cmd.OutOrStdout(), name, f, compiled)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func scanReader(w io.Writer, name string, r io.Reader, compiled []rule.Compiled) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxGrepLineLen)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		for _, c := range compiled {
			m := c.Regex.Find(line)
			if m == nil {
				continue
			}
			fmt.Fprintf(w, "%s:%d: ", name, lineNum)
			scanRuleStyle.Fprint(w, c.Rule.ID)
			fmt.Fprint(w, " ")
			scanMatchStyle.Fprint(w, m.String())
			fmt.Fprintln(w)
		}
	}
	return scanner.Err()
}
