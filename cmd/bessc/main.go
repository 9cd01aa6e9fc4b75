// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"bessambly/grammar"
	"bessambly/internal/compiler"
	"bessambly/internal/errors"
	"bessambly/internal/optimizer"
	"bessambly/internal/target"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// exitStatus is returned by a command that has already reported its failure.
type exitStatus int

func (s exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(s))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes bessc with args. Usage and option errors exit with 2,
// compilation and I/O failures with 1.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	fmt.Fprintln(stderr, color.RedString("error: %s", err))
	fmt.Fprint(stderr, cmd.UsageString())
	return 2
}

func newRootCmd() *cobra.Command {
	var (
		noColor bool
		verbose bool
	)

	root := &cobra.Command{
		Use:   "bessc [flags] file.bsm",
		Short: "Compile a Bessambly program",
		Long: `bessc parses, checks and optimizes a Bessambly program, then prints the
optimized listing and its symbol table.

Diagnostics are reported with the offending source line; explain
describes a diagnostic code. Use fmt to canonicalize a file and targets
to list the supported os/arch pairs.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
			if verbose {
				commonlog.Configure(1, nil)
			} else {
				commonlog.Configure(0, nil)
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	opts := compileFlags{}
	root.Flags().IntVarP(&opts.level, "opt-level", "O", optimizer.DefaultLevel, "optimization level (0 assigns addresses only)")
	root.Flags().IntVar(&opts.maxIterations, "max-iterations", optimizer.DefaultMaxIterations, "optimizer iteration cap")
	root.Flags().StringVar(&opts.target, "target", target.Default().String(), "target as os/arch")
	root.Flags().BoolVar(&opts.rewrites, "rewrites", false, "list every optimizer rewrite")
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd, args[0], opts)
	}

	root.AddCommand(newFormatCmd(), newTargetsCmd(), newExplainCmd())
	return root
}

type compileFlags struct {
	level         int
	maxIterations int
	target        string
	rewrites      bool
}

func runCompile(cmd *cobra.Command, path string, flags compileFlags) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	tgt, err := target.Parse(flags.target)
	if err != nil {
		return err
	}

	startTime := time.Now()

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read file: %v\n", err)
		return exitStatus(1)
	}

	opts := compiler.Options{
		OptimizationLevel: flags.level,
		MaxIterations:     flags.maxIterations,
		Target:            tgt,
	}
	result, err := compiler.Compile(path, string(source), opts)
	if result == nil {
		fmt.Fprintln(stderr, color.RedString("error: %s", err))
		return exitStatus(1)
	}

	errorReporter := errors.NewErrorReporter(path, string(source))
	for _, diag := range result.Diagnostics {
		fmt.Fprint(stderr, errorReporter.FormatError(diag))
	}

	formattedDuration := formatDuration(time.Since(startTime))

	if err != nil {
		if errors.Is(err, errors.ErrNoFixedPoint) {
			fmt.Fprintln(stderr, color.RedString("error: %s", err))
		}
		fmt.Fprintln(stderr, color.RedString("Compilation failed during %s after %s", result.FailedStage, formattedDuration))
		return exitStatus(1)
	}

	if flags.rewrites {
		for _, rewrite := range result.Report.Rewrites {
			fmt.Fprintln(stdout, rewrite.String())
		}
		fmt.Fprintln(stdout)
	}

	fmt.Fprint(stdout, result.Program.String())
	fmt.Fprintln(stdout)
	printSymbols(stdout, result)

	fmt.Fprintln(stdout, color.GreenString("Successfully compiled %s for %s in %s (%d iterations)",
		path, result.Target, formattedDuration, result.Report.Iterations))
	return nil
}

func printSymbols(w io.Writer, result *compiler.Result) {
	entries := result.Symbols.Entries()
	if len(entries) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tADDRESS\tDEFINED AT")
	for _, sym := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", sym.Name, sym.Address, sym.DefinedAt)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func newFormatCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [-w] file.bsm",
		Short: "Print a program in canonical layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args[0], write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the source file")
	return cmd
}

func runFormat(cmd *cobra.Command, path string, write bool) error {
	stderr := cmd.ErrOrStderr()

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read file: %v\n", err)
		return exitStatus(1)
	}

	formatted, err := grammar.FormatSource(path, string(source))
	if err != nil {
		grammar.ReportParseError(stderr, string(source), err)
		return exitStatus(1)
	}

	if !write {
		fmt.Fprint(cmd.OutOrStdout(), formatted)
		return nil
	}
	if formatted == string(source) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to stat file: %v\n", err)
		return exitStatus(1)
	}
	if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
		fmt.Fprintf(stderr, "failed to write file: %v\n", err)
		return exitStatus(1)
	}
	return nil
}

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List supported targets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TARGET\tWORD\tBYTE ORDER\tREGISTERS")
			for _, cfg := range target.Supported() {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", cfg, cfg.WordSize, strings.TrimSuffix(cfg.ByteOrder.String(), "Endian"), cfg.Registers)
			}
			tw.Flush()
		},
	}
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain CODE",
		Short: "Describe a diagnostic code such as E0002",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			description := errors.GetErrorDescription(code)
			if description == errors.UnknownCodeDescription {
				return fmt.Errorf("unknown diagnostic code %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", code, errors.GetErrorCategory(code), description)
			return nil
		},
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
