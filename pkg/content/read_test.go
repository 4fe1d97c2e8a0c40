package content

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

func render(t *testing.T, m xmlwriter.Marshaler) string {
	t.Helper()
	out, err := xmlwriter.Document(m, xmlwriter.Options{})
	require.NoError(t, err)
	return string(out)
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("%d", i+1)
	}
	return keys
}

func TestReadDefaults(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "CUSTOMER"})
	require.NoError(t, err)

	assert.Equal(t, "read", read.ControlID())
	assert.Equal(t, "read", read.Name())
	assert.Equal(t,
		`<function controlid="read"><read>`+
			`<object>CUSTOMER</object>`+
			`<fields>*</fields>`+
			`<keys></keys>`+
			`<returnFormat>xml</returnFormat>`+
			`</read></function>`,
		render(t, read))
}

func TestReadAllOptions(t *testing.T) {
	read, err := NewRead(ReadParams{
		ControlID:    "unittest",
		Object:       "CLASS",
		Fields:       []string{"CLASSID", "NAME"},
		Keys:         []string{"1", "2", "3"},
		ReturnFormat: ReturnFormatCSV,
		DocParID:     "D1",
	})
	require.NoError(t, err)

	assert.Equal(t,
		`<function controlid="unittest"><read>`+
			`<object>CLASS</object>`+
			`<fields>CLASSID,NAME</fields>`+
			`<keys>1,2,3</keys>`+
			`<returnFormat>csv</returnFormat>`+
			`<docparid>D1</docparid>`+
			`</read></function>`,
		render(t, read))
}

func TestReadFieldsRendering(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{name: "nil means all fields", fields: nil, want: "<fields>*</fields>"},
		{name: "empty means all fields", fields: []string{}, want: "<fields>*</fields>"},
		{name: "joined with commas", fields: []string{"a", "b"}, want: "<fields>a,b</fields>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read, err := NewRead(ReadParams{Object: "VENDOR", Fields: tt.fields})
			require.NoError(t, err)
			assert.Contains(t, render(t, read), tt.want)
		})
	}
}

func TestReadValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  ReadParams
		kind    error
		field   string
		message string
	}{
		{
			name:    "missing object",
			params:  ReadParams{},
			kind:    ErrMissingRequiredField,
			field:   "object",
			message: `Required "object" key not supplied in params`,
		},
		{
			name:    "too many keys",
			params:  ReadParams{Object: "CLASS", Keys: makeKeys(101)},
			kind:    ErrFieldLimitExceeded,
			field:   "keys",
			message: "keys count cannot exceed 100",
		},
		{
			name:   "unknown return format",
			params: ReadParams{Object: "CLASS", ReturnFormat: "yaml"},
			kind:   ErrInvalidFieldValue,
			field:  "return_format",
		},
		{
			name:   "return format is case sensitive",
			params: ReadParams{Object: "CLASS", ReturnFormat: "JSON"},
			kind:   ErrInvalidFieldValue,
			field:  "return_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read, err := NewRead(tt.params)
			require.Error(t, err)
			assert.Nil(t, read)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestReadKeyLimitBoundary(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "CLASS", Keys: makeKeys(MaxKeyCount)})
	require.NoError(t, err)
	assert.Contains(t, render(t, read), "<keys>1,2,3,")

	_, err = NewRead(ReadParams{Object: "CLASS", Keys: makeKeys(MaxKeyCount + 1)})
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, MaxKeyCount, fieldErr.Limit)
}

func TestReadReturnFormatJSON(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "CLASS", ReturnFormat: "json"})
	require.NoError(t, err)
	assert.Contains(t, render(t, read), "<returnFormat>json</returnFormat>")
}

func TestReadDocParID(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "SODOCUMENT"})
	require.NoError(t, err)
	assert.NotContains(t, render(t, read), "docparid")

	read, err = NewRead(ReadParams{Object: "SODOCUMENT", DocParID: "D1"})
	require.NoError(t, err)
	out := render(t, read)
	assert.Equal(t, 1, strings.Count(out, "<docparid>D1</docparid>"))
}

func TestReadPresenceNotTruthiness(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "0"})
	require.NoError(t, err)
	assert.Contains(t, render(t, read), "<object>0</object>")
}

func TestReadIsImmutable(t *testing.T) {
	fields := []string{"RECORDNO"}
	keys := []string{"1"}

	read, err := NewRead(ReadParams{Object: "CLASS", Fields: fields, Keys: keys})
	require.NoError(t, err)

	fields[0] = "CHANGED"
	keys[0] = "999"

	out := render(t, read)
	assert.Contains(t, out, "<fields>RECORDNO</fields>")
	assert.Contains(t, out, "<keys>1</keys>")
}

func TestReadIdempotentSerialization(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "CLASS", Fields: []string{"NAME"}, DocParID: "D1"})
	require.NoError(t, err)

	assert.Equal(t, render(t, read), render(t, read))
}

func TestReadConcurrentSerialization(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "CLASS", Keys: makeKeys(10)})
	require.NoError(t, err)
	want := render(t, read)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := xmlwriter.Document(read, xmlwriter.Options{})
			if err == nil {
				results[i] = string(out)
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

// failingSink fails every WriteElement call.
type failingSink struct {
	xmlwriter.Sink
}

var errSinkClosed = errors.New("sink closed")

func (failingSink) WriteElement(string, string) error { return errSinkClosed }

func TestReadPropagatesSinkErrors(t *testing.T) {
	read, err := NewRead(ReadParams{Object: "CLASS"})
	require.NoError(t, err)

	var buf strings.Builder
	sink := failingSink{Sink: xmlwriter.NewWriter(&buf, xmlwriter.Options{})}
	assert.True(t, errors.Is(read.WriteXML(sink), errSinkClosed))
}
