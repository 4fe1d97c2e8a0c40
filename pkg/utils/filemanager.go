// =============================================================================
// Intacct Functions - File Manager Utility
// =============================================================================
//
// File helpers for the CLI:
//   - Input discovery (files and directories of definitions)
//   - Output file naming
//   - Output and error log writing
//
// Generated documents and error logs share the output directory. An error log
// is only written when at least one definition was rejected.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// now is replaced in tests.
var now = time.Now

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles expands paths into a list of files. Files are kept as
// given; directories are walked recursively and only files accepted by
// accept are collected. Duplicates are dropped and the order of first
// appearance is preserved.
func DiscoverInputFiles(paths []string, accept func(path string) bool) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)

	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		files = append(files, clean)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat input %s", path)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if accept == nil || accept(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk input directory %s", path)
		}
	}

	return files, nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from format.
//
// Placeholders:
//
//	{uuid}      - A random UUID
//	{timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - Current date (YYYYMMDD)
//	{time}      - Current time (HHMMSS)
//	{key}       - Any key of params, e.g. {original}
//
// The result always ends in ".xml".
//
// Example:
//
//	format: "{original}_{timestamp}.xml"
//	params: {"original": "classes"}
//	output: "classes_20240115_143022.xml"
func GenerateOutputFileName(format string, params map[string]string) string {
	t := now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": t.Format("20060102_150405"),
		"{date}":      t.Format("20060102"),
		"{time}":      t.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	pairs := make([]string, 0, len(replacements)*2)
	for placeholder, value := range replacements {
		pairs = append(pairs, placeholder, value)
	}
	result := strings.NewReplacer(pairs...).Replace(format)

	if !strings.HasSuffix(strings.ToLower(result), ".xml") {
		result += ".xml"
	}

	return result
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// OUTPUT
// =============================================================================

// WriteOutputFile writes data to dir/name, creating dir when needed, and
// returns the written path.
func WriteOutputFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write output file %s", path)
	}

	return path, nil
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry is one rejected definition.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	Source       string
	Function     string
	ErrorType    string
	ErrorMessage string
	FieldName    string
	FieldValue   string
}

// WriteErrorLog writes entries to a new error log in outputDir and returns
// its path. Nothing is written for an empty list.
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create output directory %s", outputDir)
	}

	logName := fmt.Sprintf("error_log_%s_%s.txt", now().Format("20060102_150405"), uuid.New().String()[:8])
	logPath := filepath.Join(outputDir, logName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to create error log")
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Intacct Functions - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:      %s\n"+
			"  File:           %s\n"+
			"  Source:         %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.Source)

		if entry.Function != "" {
			fmt.Fprintf(writer, "  Function:       %s\n", entry.Function)
		}
		if entry.ErrorType != "" {
			fmt.Fprintf(writer, "  Error Type:     %s\n", entry.ErrorType)
		}
		fmt.Fprintf(writer, "  Message:        %s\n", entry.ErrorMessage)
		if entry.FieldName != "" {
			fmt.Fprintf(writer, "  Field:          %s\n", entry.FieldName)
		}
		if entry.FieldValue != "" {
			fmt.Fprintf(writer, "  Value:          %s\n", entry.FieldValue)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", errors.Wrap(err, "failed to flush error log")
	}

	return logPath, nil
}
