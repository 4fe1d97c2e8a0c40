package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/intacct-functions/internal/converter"
	"github.com/ginjaninja78/intacct-functions/internal/definitions"
	"github.com/ginjaninja78/intacct-functions/pkg/utils"
)

// validateCmd checks definition files without writing anything.
var validateCmd = &cobra.Command{
	Use:   "validate [files or directories...]",
	Short: "Validate definition files",
	Long: `The validate command constructs every function of the given definition files
and reports each invalid entry with its file and line. It exits non-zero when
any entry is invalid.`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(ctx context.Context, w io.Writer, args []string) error {
	files, err := utils.DiscoverInputFiles(args, definitions.IsSupported)
	if err != nil {
		return errors.Wrap(err, "failed to discover input files")
	}

	var definitionCount, invalid, failedFiles int
	for _, result := range converter.RunAll(ctx, files, mainConfig, converter.Options{}) {
		definitionCount += result.Stats.Definitions
		invalid += result.Stats.Rejected

		if !result.Success {
			failedFiles++
			printFailure(w, result)
			continue
		}
		fmt.Fprintf(w, "  %s %s: %d definition(s) valid\n", okMark, filepath.Base(result.FilePath), result.Stats.Definitions)
	}

	fmt.Fprintf(w, "\nChecked %d definition(s) in %d file(s): %d invalid\n", definitionCount, len(files), invalid)

	if failedFiles > 0 {
		return errors.Newf("validation failed for %d file(s)", failedFiles)
	}
	return nil
}
