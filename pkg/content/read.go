package content

import (
	"slices"

	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

// Return formats accepted by the read family of functions.
const (
	ReturnFormatXML  = "xml"
	ReturnFormatJSON = "json"
	ReturnFormatCSV  = "csv"

	DefaultReturnFormat = ReturnFormatXML
)

// ReturnFormats is the allowed set for return_format.
var ReturnFormats = []string{ReturnFormatXML, ReturnFormatJSON, ReturnFormatCSV}

// MaxKeyCount is the most record keys a single read may request.
const MaxKeyCount = 100

const readName = "read"

var readOptions = []string{"control_id", "object", "fields", "keys", "return_format", "doc_par_id"}

// ReadParams configures a read. Zero values mean "not supplied".
type ReadParams struct {
	ControlID    string   `yaml:"control_id"`
	Object       string   `yaml:"object"`
	Fields       []string `yaml:"fields"`
	Keys         []string `yaml:"keys"`
	ReturnFormat string   `yaml:"return_format"`
	DocParID     string   `yaml:"doc_par_id"`
}

func (p ReadParams) resolve() ReadParams {
	return ReadParams{
		ControlID:    orDefault(p.ControlID, readName),
		Object:       p.Object,
		Fields:       slices.Clone(p.Fields),
		Keys:         slices.Clone(p.Keys),
		ReturnFormat: orDefault(p.ReturnFormat, DefaultReturnFormat),
		DocParID:     p.DocParID,
	}
}

// Read fetches records of one object by record key.
type Read struct {
	p ReadParams
}

// NewRead validates params and builds a Read.
func NewRead(params ReadParams) (*Read, error) {
	p := params.resolve()

	if err := requireString("object", p.Object); err != nil {
		return nil, err
	}
	if err := requireMaxCount("keys", p.Keys, MaxKeyCount); err != nil {
		return nil, err
	}
	if err := requireOneOf("return_format", p.ReturnFormat, ReturnFormats); err != nil {
		return nil, err
	}

	return &Read{p: p}, nil
}

func readFromValues(v Values) (Function, error) {
	var (
		p   ReadParams
		err error
	)
	if p.ControlID, err = v.String("control_id"); err != nil {
		return nil, err
	}
	if p.Object, err = v.String("object"); err != nil {
		return nil, err
	}
	if p.Fields, err = v.List("fields"); err != nil {
		return nil, err
	}
	if p.Keys, err = v.List("keys"); err != nil {
		return nil, err
	}
	if p.ReturnFormat, err = v.String("return_format"); err != nil {
		return nil, err
	}
	if p.DocParID, err = v.String("doc_par_id"); err != nil {
		return nil, err
	}
	return NewRead(p)
}

func (r *Read) Name() string      { return readName }
func (r *Read) ControlID() string { return r.p.ControlID }

// WriteXML writes the read function. docparid is only written when set.
func (r *Read) WriteXML(w xmlwriter.Sink) error {
	return writeFunction(w, r.p.ControlID, readName, func() error {
		err := writeElements(w,
			"object", r.p.Object,
			"fields", joinFields(r.p.Fields),
			"keys", joinKeys(r.p.Keys),
			"returnFormat", r.p.ReturnFormat,
		)
		if err != nil {
			return err
		}
		if r.p.DocParID != "" {
			return w.WriteElement("docparid", r.p.DocParID)
		}
		return nil
	})
}
