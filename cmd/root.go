// =============================================================================
// Intacct Functions - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (intacct-fn)
//   ├── buildCmd     (intacct-fn build)
//   ├── validateCmd  (intacct-fn validate)
//   ├── functionsCmd (intacct-fn functions)
//   └── versionCmd   (intacct-fn version)
//
// The root command owns the global flags (--config, --verbose), loads the
// main configuration and sets up logging before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/intacct-functions/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// mainConfig is loaded by the root command before any subcommand runs.
var mainConfig *config.MainConfig

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "intacct-fn",
	Short: "Build Intacct API request functions from definition files",
	Long: `intacct-fn builds the <content> block of Intacct XML API requests.

Functions are described in YAML, CSV or XLSX definition files, one function
per entry. Every entry is validated before anything is written, and all
problems in a file are reported together.

Supported functions:
  read, readByName, readByQuery, readMore, inspect,
  getUserPermissions, getAPISession

Example Usage:
  intacct-fn build batch.yaml             # Write output/batch_<uuid>.xml
  intacct-fn build defs/ --stdout         # Print the documents of a directory
  intacct-fn validate batch.csv           # Check definitions only
  intacct-fn functions                    # List functions and their options`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			return err
		}
		mainConfig = cfg

		configureLogging(cmd.ErrOrStderr(), cfg.LogLevel, verbose)
		log.Debug().Str("config", cfgFile).Msg("Configuration loaded")
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configureLogging sends human readable logs to out. verbose forces debug
// level; otherwise level comes from the configuration.
func configureLogging(out io.Writer, level string, verbose bool) {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
