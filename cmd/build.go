// =============================================================================
// Intacct Functions - Build Command
// =============================================================================
//
// This file defines the 'build' command, which turns definition files into
// <content> documents.
//
// COMMAND USAGE:
//   intacct-fn build [files or directories...] [flags]
//
// FLAGS:
//   --stdout   Print documents to standard output instead of writing files
//   --dry-run  Build and validate without writing anything
//
// PROCESSING FLOW:
//   1. Expand the arguments into definition files (directories are walked)
//   2. Convert the files concurrently (bounded by max_concurrency)
//   3. Write each document, or an error log for files with rejected entries
//   4. Print a summary
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/intacct-functions/internal/converter"
	"github.com/ginjaninja78/intacct-functions/internal/definitions"
	"github.com/ginjaninja78/intacct-functions/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// toStdout prints documents instead of writing them to the output directory.
var toStdout bool

// dryRun builds documents without writing them.
var dryRun bool

// Status marks. color disables itself when output is not a terminal.
var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Add(color.Bold).Sprint("✗")
)

// =============================================================================
// BUILD COMMAND DEFINITION
// =============================================================================

var buildCmd = &cobra.Command{
	Use:   "build [files or directories...]",
	Short: "Build <content> documents from definition files",
	Long: `The build command reads each definition file, constructs every function it
lists and writes one <content> document per file to the output directory.

Directories are searched recursively for .yaml, .yml, .csv and .xlsx files.
Files are processed concurrently and independently: a file with any invalid
entry produces no document, an error log is written next to the outputs and
the other files are still built.`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(
		&toStdout,
		"stdout",
		false,
		"Print documents to standard output instead of writing files",
	)

	buildCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Build and validate without writing any output",
	)
}

// =============================================================================
// BUILD LOGIC
// =============================================================================

// runBuild converts the files named by args. Documents go to stdout when
// --stdout is set; progress and the summary go to stderr in that case so
// stdout only carries XML.
func runBuild(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	startTime := time.Now()

	report := stdout
	if toStdout {
		report = stderr
	}

	files, err := utils.DiscoverInputFiles(args, definitions.IsSupported)
	if err != nil {
		return errors.Wrap(err, "failed to discover input files")
	}
	if len(files) == 0 {
		fmt.Fprintln(report, "No definition files found.")
		return nil
	}

	opts := converter.Options{WriteOutput: !toStdout && !dryRun}
	results := converter.RunAll(ctx, files, mainConfig, opts)

	var failed int
	for _, result := range results {
		if !result.Success {
			failed++
			printFailure(report, result)
			continue
		}

		switch {
		case toStdout:
			stdout.Write(result.Document)
		case dryRun:
			fmt.Fprintf(report, "  %s %s (%d functions)\n", okMark, filepath.Base(result.FilePath), result.Stats.Functions)
		default:
			fmt.Fprintf(report, "  %s %s -> %s\n", okMark, filepath.Base(result.FilePath), result.OutputFile)
		}
	}

	fmt.Fprintln(report, "\n=== Build Complete ===")
	fmt.Fprintf(report, "Total files:     %d\n", len(results))
	fmt.Fprintf(report, "Successful:      %d\n", len(results)-failed)
	fmt.Fprintf(report, "Errors:          %d\n", failed)
	fmt.Fprintf(report, "Time elapsed:    %s\n", time.Since(startTime).Round(time.Millisecond))

	if failed > 0 {
		return errors.Newf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

// printFailure reports a failed file and each of its rejected definitions.
func printFailure(w io.Writer, result converter.Result) {
	fmt.Fprintf(w, "  %s %s: %v\n", failMark, filepath.Base(result.FilePath), result.Error)
	for _, failure := range result.Failures {
		fmt.Fprintf(w, "      %v\n", failure)
	}
	if result.ErrorLog != "" {
		fmt.Fprintf(w, "      error log: %s\n", result.ErrorLog)
	}
}
