package definitions

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the first sheet of an XLSX definitions workbook. The sheet
// uses the same layout as a CSV definitions file.
func LoadXLSX(path string) ([]Definition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open definitions workbook")
	}
	defer file.Close()

	return ParseXLSX(file, path)
}

// ParseXLSX reads an XLSX workbook from r. source names r in Definition.Source.
func ParseXLSX(r io.Reader, source string) ([]Definition, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open workbook %s", source)
	}
	defer f.Close()

	return parseWorkbook(f, source)
}

func parseWorkbook(f *excelize.File, source string) ([]Definition, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.Newf("%s: workbook has no sheets", source)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to read rows of sheet %q", source, sheetName)
	}

	return rowsToDefinitions(rows, nil, source)
}
