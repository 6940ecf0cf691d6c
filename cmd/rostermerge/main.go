// Package main provides the CLI entry point for rostermerge.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/rostermerge-go/internal/config"
	"github.com/ukaji3/rostermerge-go/internal/logger"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/merger"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/output"
)

// exitCodeUsage is returned for bad arguments and missing input files.
const exitCodeUsage = 2

// cliFlags holds the parsed command-line flags.
type cliFlags struct {
	mode       string
	labels     string
	phrases    string
	sheetName  string
	jsonOutput bool
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(format string, args ...interface{}) error {
	return &exitError{code: exitCodeUsage, err: fmt.Errorf(format, args...)}
}

// Output is the JSON summary printed with --json.
type Output struct {
	Success    bool           `json:"success"`
	OutputFile string         `json:"output_file"`
	RowCount   int            `json:"row_count"`
	Header     []string       `json:"header"`
	Summary    merger.Summary `json:"summary"`
	Duration   string         `json:"duration"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}
	rootCmd := &cobra.Command{
		Use:   "rostermerge <input.xlsx> <output.xlsx>",
		Short: "Consolidate roster tables from every sheet into one",
		Long: `rostermerge finds personnel roster tables (registration number, name,
day count and status columns, with French or Arabic headers) on every sheet
of a workbook and writes them to a single "Combined" sheet.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageError("usage: %s", cmd.UseLine())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&flags.mode, "mode", "grouped", "Detection mode: grouped, fixed")
	rootCmd.Flags().StringVar(&flags.labels, "labels", "default", "Output header labels: default, legacy")
	rootCmd.Flags().StringVar(&flags.phrases, "phrases", "", "JSON file overriding the header phrase table")
	rootCmd.Flags().StringVar(&flags.sheetName, "sheet-name", output.DefaultSheetName, "Name of the output sheet")
	rootCmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print a JSON summary instead of the row count line")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitError{code: exitCodeUsage, err: err}
	})

	return rootCmd
}

func run(cmd *cobra.Command, args []string, flags *cliFlags) error {
	start := time.Now()
	inputPath, outputPath := args[0], args[1]
	log := logger.NewDefault()

	opts, err := buildOptions(flags)
	if err != nil {
		return err
	}

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return usageError("input file not found: %s", inputPath)
	}

	res, err := rostermerge.Extract(inputPath, opts)
	if err != nil {
		if errors.Is(err, rostermerge.ErrInputMissing) {
			return &exitError{code: exitCodeUsage, err: err}
		}
		return fmt.Errorf("extraction failed: %w", err)
	}
	for _, w := range res.Warnings {
		log.Warn("%v", w)
	}
	log.Debug("%d tables on %d sheets", res.Summary.Tables, len(res.Summary.Sheets))

	var buf bytes.Buffer
	if err := res.Write(&buf, opts); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	out := cmd.OutOrStdout()
	if !flags.jsonOutput {
		fmt.Fprintf(out, "Wrote %d data rows to %s\n", len(res.Grid.Rows), outputPath)
		return nil
	}

	jsonData, err := output.ToJSON(Output{
		Success:    true,
		OutputFile: outputPath,
		RowCount:   len(res.Grid.Rows),
		Header:     res.Grid.Header,
		Summary:    res.Summary,
		Duration:   time.Since(start).String(),
	}, true)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(out, string(jsonData))
	return nil
}

func buildOptions(flags *cliFlags) (rostermerge.Options, error) {
	opts := rostermerge.DefaultOptions()

	m, err := rostermerge.ParseMode(flags.mode)
	if err != nil {
		return opts, usageError("%v", err)
	}
	opts.Mode = m

	l, err := rostermerge.ParseLabels(flags.labels)
	if err != nil {
		return opts, usageError("%v", err)
	}
	opts.Labels = l

	if flags.phrases != "" {
		phrases, err := config.LoadPhrases(flags.phrases)
		if err != nil {
			return opts, usageError("%v", err)
		}
		opts.Phrases = phrases
	}

	opts.SheetName = flags.sheetName
	return opts, nil
}
