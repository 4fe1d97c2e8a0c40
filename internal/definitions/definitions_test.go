package definitions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/intacct-functions/pkg/content"
	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

const batchYAML = `functions:
  - function: read
    params:
      object: CLASS
      fields: [CLASSID, NAME]
      keys: [1, 2]
  - function: getUserPermissions
    params:
      control_id: perms
      user_id: jdoe
  - function: getAPISession
`

const batchCSV = `function,control_id,object,fields,keys,user_id
read,,CLASS,"CLASSID,NAME","1,2",
getUserPermissions,perms,,,,jdoe

getAPISession,,,,,
`

var batchRows = [][]any{
	{"function", "control_id", "object", "fields", "keys", "user_id"},
	{"read", "", "CLASS", "CLASSID,NAME", "1,2", ""},
	{"getUserPermissions", "perms", "", "", "", "jdoe"},
	{"getAPISession"},
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func renderAll(t *testing.T, fns []content.Function) string {
	t.Helper()
	c, err := content.NewContent(fns...)
	require.NoError(t, err)
	out, err := xmlwriter.Document(c, xmlwriter.Options{})
	require.NoError(t, err)
	return string(out)
}

func TestParseYAML(t *testing.T) {
	defs, err := ParseYAML(strings.NewReader(batchYAML), "batch.yaml")
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, "batch.yaml:2", defs[0].Source)
	assert.Equal(t, "read", defs[0].Function)
	assert.Equal(t, "CLASS", defs[0].Values["object"])
	assert.Equal(t, []any{"1", "2"}, defs[0].Values["keys"])

	assert.Equal(t, "getAPISession", defs[2].Function)
	assert.Empty(t, defs[2].Values)
}

func TestParseYAMLKeepsScalarText(t *testing.T) {
	const yamlBody = `functions:
  - function: read
    params:
      object: CLASS
      keys: [0012, 1_000]
      doc_par_id: 1.10
  - function: readByName
    params:
      object: VENDOR
      names: [12345678901234567890, 0x1F]
  - function: inspect
    params:
      object: VENDOR
      detail: yes
`
	const csvBody = `function,object,keys,doc_par_id,names,detail
read,CLASS,"0012,1_000",1.10,,
readByName,VENDOR,,,"12345678901234567890,0x1F",
inspect,VENDOR,,,,yes
`

	render := func(defs []Definition, err error) string {
		require.NoError(t, err)
		fns, failures := Build(defs)
		require.Empty(t, failures)
		return renderAll(t, fns)
	}

	fromYAML := render(ParseYAML(strings.NewReader(yamlBody), "keys.yaml"))
	fromCSV := render(ParseCSV(strings.NewReader(csvBody), "keys.csv"))

	assert.Contains(t, fromYAML, "<keys>0012,1_000</keys>")
	assert.Contains(t, fromYAML, "<docparid>1.10</docparid>")
	assert.Contains(t, fromYAML, "<keys>12345678901234567890,0x1F</keys>")
	assert.Contains(t, fromYAML, `<inspect detail="1">`)
	assert.Equal(t, fromCSV, fromYAML)
}

func TestParseYAMLNullAndNestedParams(t *testing.T) {
	defs, err := ParseYAML(strings.NewReader(`functions:
  - function: read
    params:
      object: CLASS
      doc_par_id: ~
      fields: [NAME, ~]
  - function: read
    params:
      object: {name: CLASS}
`), "nested.yaml")
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Nil(t, defs[0].Values["doc_par_id"])
	assert.Equal(t, []any{"NAME", ""}, defs[0].Values["fields"])

	fns, failures := Build(defs)
	require.Len(t, fns, 1)
	require.Len(t, failures, 1)
	assert.True(t, errors.Is(failures[0], content.ErrInvalidFieldValue))
}

func TestParseYAMLEmpty(t *testing.T) {
	defs, err := ParseYAML(strings.NewReader(""), "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, defs)

	_, err = ParseYAML(strings.NewReader("functions: [\n"), "bad.yaml")
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	defs, err := ParseCSV(strings.NewReader(batchCSV), "batch.csv")
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, Definition{
		Source:   "batch.csv:2",
		Function: "read",
		Values:   content.Values{"object": "CLASS", "fields": "CLASSID,NAME", "keys": "1,2"},
	}, defs[0])
	assert.Equal(t, "batch.csv:3", defs[1].Source)
	assert.Equal(t, "batch.csv:5", defs[2].Source)
}

func TestParseCSVHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no function column", body: "object\nCLASS\n", want: `missing "function" column`},
		{name: "duplicate header", body: "function,object,object\nread,A,B\n", want: `duplicate header "object"`},
		{name: "empty header", body: "function,,object\nread,,A\n", want: "header 2 is empty"},
		{name: "too many cells", body: "function,object\nread,CLASS,extra\n", want: "row has 3 cells"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.body), "bad.csv")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseCSVHeaderCleanup(t *testing.T) {
	defs, err := ParseCSV(strings.NewReader("\ufeff Function , Object,\nread,CLASS,\n"), "bom.csv")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "read", defs[0].Function)
	assert.Equal(t, content.Values{"object": "CLASS"}, defs[0].Values)
}

func TestLoadFormatsAgree(t *testing.T) {
	paths := []string{
		writeFile(t, "batch.yaml", batchYAML),
		writeFile(t, "batch.csv", batchCSV),
		writeWorkbook(t, batchRows),
	}

	var outputs []string
	for _, path := range paths {
		defs, err := Load(path)
		require.NoError(t, err, path)

		fns, failures := Build(defs)
		require.Empty(t, failures, path)
		require.Len(t, fns, 3, path)

		outputs = append(outputs, renderAll(t, fns))
	}

	assert.Equal(t,
		`<content>`+
			`<function controlid="read"><read><object>CLASS</object><fields>CLASSID,NAME</fields><keys>1,2</keys><returnFormat>xml</returnFormat></read></function>`+
			`<function controlid="perms"><getUserPermissions><userId>jdoe</userId></getUserPermissions></function>`+
			`<function controlid="getAPISession"><getAPISession></getAPISession></function>`+
			`</content>`,
		outputs[0])
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}

func TestParseXLSXFromReader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range batchRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	defs, err := ParseXLSX(buf, "upload.xlsx")
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "upload.xlsx:2", defs[0].Source)
	assert.Equal(t, "getUserPermissions", defs[1].Function)

	_, err = ParseXLSX(strings.NewReader("not a workbook"), "bad.xlsx")
	assert.Error(t, err)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load(writeFile(t, "batch.json", "{}"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	assert.True(t, IsSupported("a/b/C.XLSX"))
	assert.False(t, IsSupported("notes.txt"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestBuildCollectsErrors(t *testing.T) {
	defs := []Definition{
		{Source: "b.csv:2", Function: "read", Values: content.Values{"object": "CLASS"}},
		{Source: "b.csv:3", Function: "read", Values: content.Values{}},
		{Source: "b.csv:4", Function: "", Values: content.Values{"object": "CLASS"}},
		{Source: "b.csv:5", Function: "read", Values: content.Values{"object": "CLASS", "return_format": "yaml"}},
		{Source: "b.csv:6", Function: "create", Values: content.Values{}},
	}

	fns, failures := Build(defs)
	require.Len(t, fns, 1)
	require.Len(t, failures, 4)

	assert.True(t, errors.Is(failures[0], content.ErrMissingRequiredField))
	assert.Equal(t, `b.csv:3: read: Required "object" key not supplied in params`, failures[0].Error())

	assert.True(t, errors.Is(failures[1], content.ErrMissingRequiredField))
	assert.Equal(t, `b.csv:4: Required "function" key not supplied in definition`, failures[1].Error())

	assert.True(t, errors.Is(failures[2], content.ErrInvalidFieldValue))
	assert.True(t, errors.Is(failures[3], content.ErrUnknownFunction))
}
