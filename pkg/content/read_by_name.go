package content

import (
	"slices"

	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

// MaxNameCount is the most names a single readByName may request.
const MaxNameCount = 100

const readByNameName = "readByName"

var readByNameOptions = []string{"control_id", "object", "fields", "names", "return_format", "doc_par_id"}

// ReadByNameParams configures a readByName. Zero values mean "not supplied".
type ReadByNameParams struct {
	ControlID    string   `yaml:"control_id"`
	Object       string   `yaml:"object"`
	Fields       []string `yaml:"fields"`
	Names        []string `yaml:"names"`
	ReturnFormat string   `yaml:"return_format"`
	DocParID     string   `yaml:"doc_par_id"`
}

func (p ReadByNameParams) resolve() ReadByNameParams {
	return ReadByNameParams{
		ControlID:    orDefault(p.ControlID, readByNameName),
		Object:       p.Object,
		Fields:       slices.Clone(p.Fields),
		Names:        slices.Clone(p.Names),
		ReturnFormat: orDefault(p.ReturnFormat, DefaultReturnFormat),
		DocParID:     p.DocParID,
	}
}

// ReadByName fetches records of one object by their name field.
type ReadByName struct {
	p ReadByNameParams
}

// NewReadByName fills defaults, then checks that object is set and that no
// more than MaxNameCount names are requested.
func NewReadByName(params ReadByNameParams) (*ReadByName, error) {
	p := params.resolve()

	if err := requireString("object", p.Object); err != nil {
		return nil, err
	}
	if err := requireMaxCount("names", p.Names, MaxNameCount); err != nil {
		return nil, err
	}
	if err := requireOneOf("return_format", p.ReturnFormat, ReturnFormats); err != nil {
		return nil, err
	}

	return &ReadByName{p: p}, nil
}

func readByNameFromValues(v Values) (Function, error) {
	var (
		p   ReadByNameParams
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
	if p.Names, err = v.List("names"); err != nil {
		return nil, err
	}
	if p.ReturnFormat, err = v.String("return_format"); err != nil {
		return nil, err
	}
	if p.DocParID, err = v.String("doc_par_id"); err != nil {
		return nil, err
	}
	return NewReadByName(p)
}

func (r *ReadByName) Name() string      { return readByNameName }
func (r *ReadByName) ControlID() string { return r.p.ControlID }

// WriteXML writes the names into the <keys> element, which is where the API
// expects them for readByName.
func (r *ReadByName) WriteXML(w xmlwriter.Sink) error {
	return writeFunction(w, r.p.ControlID, readByNameName, func() error {
		err := writeElements(w,
			"object", r.p.Object,
			"fields", joinFields(r.p.Fields),
			"keys", joinKeys(r.p.Names),
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
