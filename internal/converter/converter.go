// =============================================================================
// Intacct Functions - Converter
// =============================================================================
//
// The converter turns one definitions file into one <content> document:
//
//   1. Load the definitions (YAML, CSV or XLSX)
//   2. Construct every function, collecting all rejected definitions
//   3. Serialize the functions into a <content> document
//   4. Write the document to the output directory
//
// A file with any rejected definition produces no document. With WriteOutput
// set, the rejections are written to an error log in the output directory
// instead.
//
// RunAll converts many files concurrently, bounded by MaxConcurrency, and
// returns the results in input order.
//
// =============================================================================

package converter

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/intacct-functions/internal/config"
	"github.com/ginjaninja78/intacct-functions/internal/definitions"
	"github.com/ginjaninja78/intacct-functions/pkg/content"
	"github.com/ginjaninja78/intacct-functions/pkg/utils"
	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

// ErrRejectedDefinitions is the Result error of a file with invalid definitions.
var ErrRejectedDefinitions = errors.New("definitions rejected")

// =============================================================================
// RESULT TYPES
// =============================================================================

// Result contains the outcome of converting one file.
type Result struct {
	// FilePath is the path of the definitions file.
	FilePath string

	// OutputFile is the path of the written document, empty if none was written.
	OutputFile string

	// ErrorLog is the path of the written error log, empty if none was written.
	ErrorLog string

	// Document is the serialized <content> document.
	Document []byte

	// Success indicates whether a document was produced.
	Success bool

	// Error holds the error that stopped conversion.
	Error error

	// Failures lists every rejected definition.
	Failures []*definitions.BuildError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion of one file.
type ProcessingStats struct {
	// Definitions is the number of entries read from the file.
	Definitions int

	// Functions is the number of functions constructed.
	Functions int

	// Rejected is the number of entries that failed construction.
	Rejected int

	// ProcessingTime is the total time taken.
	ProcessingTime time.Duration
}

// Options controls what Run does with a built document.
type Options struct {
	// WriteOutput writes documents and error logs under OutputDir.
	// Without it Run only builds and returns the document.
	WriteOutput bool
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter converts a single definitions file.
type Converter struct {
	path   string
	config *config.MainConfig
	opts   Options
	logger zerolog.Logger
}

// New creates a Converter for path.
func New(path string, cfg *config.MainConfig, opts Options) *Converter {
	return &Converter{
		path:   path,
		config: cfg,
		opts:   opts,
		logger: log.With().Str("file", path).Logger(),
	}
}

// Run converts the file. It never panics on bad input; all failures are
// reported through the Result.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{FilePath: c.path}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	c.logger.Debug().Msg("Processing file")

	defs, err := definitions.Load(c.path)
	if err != nil {
		result.Error = errors.Wrap(err, "failed to load definitions")
		return result
	}
	result.Stats.Definitions = len(defs)

	functions, failures := definitions.Build(defs)
	result.Stats.Functions = len(functions)
	result.Stats.Rejected = len(failures)

	if len(failures) > 0 {
		for _, failure := range failures {
			c.logger.Warn().Str("source", failure.Source).Msg(failure.Err.Error())
		}
		result.Failures = failures
		result.Error = errors.Wrapf(ErrRejectedDefinitions, "%d of %d", len(failures), len(defs))

		if c.opts.WriteOutput {
			logPath, err := utils.WriteErrorLog(ErrorLogEntries(c.path, failures), c.config.OutputDir)
			if err != nil {
				c.logger.Error().Err(err).Msg("Failed to write error log")
			}
			result.ErrorLog = logPath
		}
		return result
	}

	doc, err := c.render(functions)
	if err != nil {
		result.Error = errors.Wrap(err, "failed to generate XML")
		return result
	}
	result.Document = doc

	if c.opts.WriteOutput {
		name := utils.GenerateOutputFileName(c.config.OutputFileFormat, map[string]string{
			"original": utils.BaseName(c.path),
			"slug":     slug.Make(utils.BaseName(c.path)),
		})
		outputPath, err := utils.WriteOutputFile(c.config.OutputDir, name, doc)
		if err != nil {
			result.Error = errors.Wrap(err, "failed to write output")
			return result
		}
		result.OutputFile = outputPath
		c.logger.Info().Str("output", outputPath).Int("functions", len(functions)).Msg("Wrote document")
	}

	result.Success = true
	return result
}

func (c *Converter) render(functions []content.Function) ([]byte, error) {
	doc, err := content.NewContent(functions...)
	if err != nil {
		return nil, err
	}

	return xmlwriter.Document(doc, xmlwriter.Options{
		Indent:      c.config.IndentString(),
		Declaration: !c.config.OmitXMLDeclaration,
	})
}

// ErrorLogEntries converts rejected definitions of file into error log entries.
func ErrorLogEntries(file string, failures []*definitions.BuildError) []utils.ErrorLogEntry {
	timestamp := time.Now()
	entries := make([]utils.ErrorLogEntry, 0, len(failures))

	for _, failure := range failures {
		entry := utils.ErrorLogEntry{
			Timestamp:    timestamp,
			FileName:     file,
			Source:       failure.Source,
			Function:     failure.Function,
			ErrorMessage: failure.Err.Error(),
		}

		var fieldErr *content.FieldError
		if errors.As(failure.Err, &fieldErr) {
			entry.ErrorType = fieldErr.Kind.Error()
			entry.FieldName = fieldErr.Field
			entry.FieldValue = fieldErr.Value
		}

		entries = append(entries, entry)
	}

	return entries
}

// =============================================================================
// CONCURRENT PROCESSING
// =============================================================================

// RunAll converts every path with at most cfg.MaxConcurrency conversions in
// flight. Results are returned in the order of paths. Files not started
// before ctx is done are reported with the context error.
func RunAll(ctx context.Context, paths []string, cfg *config.MainConfig, opts Options) []Result {
	limit := cfg.MaxConcurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(paths))

	var group errgroup.Group
	group.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{FilePath: path, Error: err}
				return nil
			}
			results[i] = New(path, cfg, opts).Run()
			return nil
		})
	}

	group.Wait()
	return results
}
