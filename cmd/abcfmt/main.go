// Command abcfmt reads ABC tune source from a file or stdin, analyzes and
// formats it, and writes the formatted ABC to stdout with diagnostics on
// stderr (spec §6: analyze_abc + format_abc exposed as a CLI).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abc-lang/abcls/internal/version"
	"github.com/abc-lang/abcls/pkg/abcls"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var pretty bool
	var showVersion bool

	cmd := &cobra.Command{
		Use:           "abcfmt [file]",
		Short:         "Format ABC tune notation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			return run(cmd, args, pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "apply the pretty-print layout")
	cmd.Flags().BoolVar(&showVersion, "version", false, "print the abcfmt version and exit")
	return cmd
}

func run(cmd *cobra.Command, args []string, pretty bool) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	tree, diags := abcls.AnalyzeABC(src)
	printDiagnostics(cmd.ErrOrStderr(), diags)

	out := abcls.FormatABC(tree, pretty)
	fmt.Fprint(cmd.OutOrStdout(), out)

	for _, d := range diags {
		if d.Severity == "error" {
			return fmt.Errorf("abcfmt: %d error(s) reported", countErrors(diags))
		}
	}
	return nil
}

func countErrors(diags []abcls.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == "error" {
			n++
		}
	}
	return n
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), nil
}

func printDiagnostics(w io.Writer, diags []abcls.Diagnostic) {
	color := isatty.IsTerminal(os.Stderr.Fd())
	for _, d := range diags {
		label := d.Severity
		if color {
			if d.Severity == "error" {
				label = "\x1b[31merror\x1b[0m"
			} else {
				label = "\x1b[33mwarning\x1b[0m"
			}
		}
		fmt.Fprintf(w, "%d:%d: %s: %s [%s]\n",
			d.Range.Start.Line+1, d.Range.Start.Character+1, label, d.Message, d.Source)
	}
}
