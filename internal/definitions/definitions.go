// =============================================================================
// Intacct Functions - Function Definitions
// =============================================================================
//
// A definitions file lists the functions to build, one per entry. Three
// layouts are supported and produce the same Definitions:
//
//   YAML (.yaml, .yml)         CSV (.csv) / XLSX (.xlsx, first sheet)
//   ------------------         --------------------------------------
//   functions:                 function,object,fields,keys
//     - function: read         read,CLASS,"CLASSID,NAME","1,2"
//       params:                getUserPermissions,,,
//         object: CLASS
//         fields: [CLASSID, NAME]
//         keys: [1, 2]
//
// In tabular files the header row names the options, the "function" column
// names the function and blank cells are treated as not supplied.
//
// =============================================================================

package definitions

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/ginjaninja78/intacct-functions/pkg/content"
)

// FunctionColumn is the option key / column header that names the function.
const FunctionColumn = "function"

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported definitions file format")

// =============================================================================
// DEFINITION
// =============================================================================

// Definition is one function entry read from a file, not yet validated.
type Definition struct {
	// Source locates the entry for error reporting, e.g. "batch.csv:3".
	Source string

	// Function is the function name, e.g. "read".
	Function string

	// Values holds the options of the entry.
	Values content.Values
}

// Extensions lists the file extensions Load understands.
func Extensions() []string {
	return []string{".yaml", ".yml", ".csv", ".xlsx"}
}

// IsSupported reports whether path has a supported extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range Extensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Load reads the definitions in path, choosing the parser by extension.
func Load(path string) ([]Definition, error) {
	var (
		defs []Definition
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		defs, err = LoadYAML(path)
	case ".csv":
		defs, err = LoadCSV(path)
	case ".xlsx":
		defs, err = LoadXLSX(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("file", path).
		Int("definitions", len(defs)).
		Msg("Definitions loaded")

	return defs, nil
}

// =============================================================================
// BUILDING
// =============================================================================

// BuildError reports a definition that failed to construct.
type BuildError struct {
	Source   string
	Function string
	Err      error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Function, e.Err)
}

// Unwrap exposes the construction error so errors.Is can match its kind.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// Build constructs every definition. Failures do not stop the build: all
// errors are collected and returned alongside the functions that succeeded.
func Build(defs []Definition) ([]content.Function, []*BuildError) {
	var (
		functions []content.Function
		failures  []*BuildError
	)

	for _, def := range defs {
		fn, err := build(def)
		if err != nil {
			log.Debug().
				Str("source", def.Source).
				Str("function", def.Function).
				Err(err).
				Msg("Definition rejected")

			failures = append(failures, &BuildError{
				Source:   def.Source,
				Function: def.Function,
				Err:      err,
			})
			continue
		}
		functions = append(functions, fn)
	}

	return functions, failures
}

func build(def Definition) (content.Function, error) {
	if def.Function == "" {
		return nil, &content.FieldError{
			Kind:    content.ErrMissingRequiredField,
			Field:   FunctionColumn,
			Message: fmt.Sprintf("Required %q key not supplied in definition", FunctionColumn),
		}
	}
	return content.New(def.Function, def.Values)
}
