// =============================================================================
// Intacct Functions - Tabular Definitions (CSV)
// =============================================================================
//
// One row per function. The first non-empty row is the header row and names
// the options; every following non-empty row is a function entry.
//
//   Row 1: function | control_id | object   | fields         | keys
//   Row 2: read     |            | CUSTOMER | "CUSTOMERID,NAME" | "C1,C2"
//
// List options such as fields and keys are comma-separated inside one cell,
// so the cell must be quoted in CSV.
//
// =============================================================================

package definitions

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ginjaninja78/intacct-functions/pkg/content"
)

// LoadCSV reads a CSV definitions file.
func LoadCSV(path string) ([]Definition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open definitions file")
	}
	defer file.Close()

	return ParseCSV(file, path)
}

// ParseCSV reads CSV definitions from r. source names r in Definition.Source.
func ParseCSV(r io.Reader, source string) ([]Definition, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	configureReader(reader)

	// Blank lines are skipped by the reader, so file line numbers are
	// recorded per record.
	var (
		rows  [][]string
		lines []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV %s", source)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}

	return rowsToDefinitions(rows, lines, source)
}

// configureReader relaxes the CSV reader for hand-edited files.
func configureReader(reader *csv.Reader) {
	// Rows may leave trailing optional columns out.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// =============================================================================
// SHARED ROW HANDLING (CSV AND XLSX)
// =============================================================================

// rowsToDefinitions turns a header row plus data rows into Definitions.
// lines holds the 1-based line of each row; nil means rows are contiguous
// from line 1, as in a spreadsheet.
func rowsToDefinitions(rows [][]string, lines []int, source string) ([]Definition, error) {
	lineOf := func(i int) int {
		if i < len(lines) {
			return lines[i]
		}
		return i + 1
	}

	headerIndex := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return nil, nil
	}

	headers := cleanHeaders(rows[headerIndex])
	if err := checkHeaders(headers, source); err != nil {
		return nil, err
	}

	var defs []Definition
	for i := headerIndex + 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		if len(row) > len(headers) && !isRowEmpty(row[len(headers):]) {
			return nil, errors.Newf("%s:%d: row has %d cells but only %d headers", source, lineOf(i), len(row), len(headers))
		}

		def := Definition{
			Source: fmt.Sprintf("%s:%d", source, lineOf(i)),
			Values: content.Values{},
		}

		for col, header := range headers {
			if col >= len(row) {
				break
			}
			value := strings.TrimSpace(row[col])
			if value == "" {
				continue
			}
			if header == FunctionColumn {
				def.Function = value
				continue
			}
			def.Values[header] = value
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// cleanHeaders trims and lower-cases header cells, strips a UTF-8 BOM and
// drops trailing empty cells.
func cleanHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, cell := range row {
		cell = strings.TrimPrefix(cell, "\ufeff")
		headers[i] = strings.ToLower(strings.TrimSpace(cell))
	}
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}
	return headers
}

// checkHeaders requires a function column and rejects duplicate names.
func checkHeaders(headers []string, source string) error {
	seen := make(map[string]bool, len(headers))
	hasFunction := false

	for i, header := range headers {
		if header == "" {
			return errors.Newf("%s: header %d is empty", source, i+1)
		}
		if seen[header] {
			return errors.Newf("%s: duplicate header %q", source, header)
		}
		seen[header] = true
		if header == FunctionColumn {
			hasFunction = true
		}
	}

	if !hasFunction {
		return errors.Newf("%s: missing %q column", source, FunctionColumn)
	}
	return nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
