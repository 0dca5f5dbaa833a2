// Command abctrun evaluates an ABCT transform script against a filesystem
// AbcLoader and writes the resulting ABC to stdout or a file (spec §6:
// evaluate_abct exposed as a CLI).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
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
	var outPath string
	var showVersion bool
	var cacheSize int

	cmd := &cobra.Command{
		Use:           "abctrun <script.abct>",
		Short:         "Run an ABCT transform script against ABC files on disk",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("abctrun: a script path is required")
			}
			return run(cmd, args[0], outPath, cacheSize)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the resulting ABC to this file instead of stdout")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 64, "number of parsed ABC trees to cache")
	cmd.Flags().BoolVar(&showVersion, "version", false, "print the abctrun version and exit")
	return cmd
}

func run(cmd *cobra.Command, scriptPath, outPath string, cacheSize int) error {
	start := time.Now()

	b, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", scriptPath, err)
	}

	loader, err := abcls.NewFSLoader(filepath.Dir(scriptPath), cacheSize)
	if err != nil {
		return fmt.Errorf("opening loader at %s: %w", filepath.Dir(scriptPath), err)
	}

	result := abcls.EvaluateABCT(string(b), loader)
	printDiagnostics(cmd.ErrOrStderr(), result.Diagnostics)

	var written int
	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}
	for _, abc := range result.ABC {
		n, _ := fmt.Fprint(out, abc)
		written += n
	}

	errCount := 0
	for _, d := range result.Diagnostics {
		if d.Severity == "error" {
			errCount++
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "analyzed %d file(s), wrote %s, %d diagnostic(s) in %s\n",
		len(result.ABC), humanize.Bytes(uint64(written)), len(result.Diagnostics), time.Since(start).Round(time.Millisecond))

	if errCount > 0 {
		return fmt.Errorf("abctrun: %d error(s) reported", errCount)
	}
	return nil
}

func printDiagnostics(w io.Writer, diags []abcls.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%d:%d: %s: %s [%s]\n",
			d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message, d.Source)
	}
}
