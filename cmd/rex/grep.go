package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	rex "github.com/fossillogic/rex"
)

var (
	grepOptions        optionFlags
	grepLineNumbers    bool
	grepFixedStrings   bool
	grepInvert         bool
	grepCountOnly      bool
	grepMatchStyle     = color.New(color.FgRed, color.Bold)
	grepFileStyle      = color.New(color.FgMagenta)
	grepLineNumStyle   = color.New(color.FgGreen)
	maxGrepLineLen     = 1024 * 1024
	errGrepNoMatch     = fmt.Errorf("no match")
)

var grepCmd = &cobra.Command{
	Use:   "grep PATTERN [FILE...]",
	Short: "Print lines matching a pattern",
	Long: `Compile PATTERN once and print every matching line of the given files,
or of standard input when no file is named. The matched span is
highlighted. Exits non-zero when nothing matched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrep,
}

func init() {
	grepOptions.register(grepCmd)
	grepCmd.Flags().BoolVarP(&grepLineNumbers, "line-number", "n", false, "Prefix matches with line numbers")
	grepCmd.Flags().BoolVarP(&grepFixedStrings, "fixed-strings", "F", false, "Treat PATTERN as a literal string")
	grepCmd.Flags().BoolVarP(&grepInvert, "invert-match", "v", false, "Print non-matching lines")
	grepCmd.Flags().BoolVarP(&grepCountOnly, "count", "c", false, "Print only a count of matching lines")
}

func runGrep(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	if grepFixedStrings {
		pattern = rex.QuoteMeta(pattern)
	}
	re, err := rex.Compile(pattern, grepOptions.identifiers()...)
	if err != nil {
		return err
	}

	files := args[1:]
	showName := len(files) > 1
	total := 0
	if len(files) == 0 {
		n, err := grepReader(cmd.OutOrStdout(), "(stdin)", os.Stdin, re, false)
		if err != nil {
			return err
		}
		total += n
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		n, err := grepReader(cmd.OutOrStdout(), name, f, re, showName)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		total += n
	}
	if grepCountOnly {
		fmt.Fprintln(cmd.OutOrStdout(), total)
	}
	if total == 0 {
		return errGrepNoMatch
	}
	return nil
}

// grepReader scans r line by line, printing matches to w. It returns
// the number of matching lines.
func grepReader(w io.Writer, name string, r io.Reader, re *rex.Regex, showName bool) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxGrepLineLen)
	matched := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		m := re.Find(line)
		if (m != nil) == grepInvert {
			continue
		}
		matched++
		if grepCountOnly {
			continue
		}
		printGrepLine(w, name, lineNum, line, m, showName)
	}
	return matched, scanner.Err()
}

func printGrepLine(w io.Writer, name string, lineNum int, line []byte, m *rex.Match, showName bool) {
	if showName {
		grepFileStyle.Fprint(w, name)
		fmt.Fprint(w, ":")
	}
	if grepLineNumbers {
		grepLineNumStyle.Fprintf(w, "%d", lineNum)
		fmt.Fprint(w, ":")
	}
	if m == nil {
		// Inverted match: no span to highlight.
		fmt.Fprintf(w, "%s\n", line)
		return
	}
	fmt.Fprintf(w, "%s", line[:m.Start()])
	grepMatchStyle.Fprintf(w, "%s", line[m.Start():m.End()])
	fmt.Fprintf(w, "%s\n", line[m.End():])
}
