package content

import (
	"slices"
	"strconv"

	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

// Page size bounds for readByQuery.
const (
	DefaultPageSize = 1000
	MaxPageSize     = 1000
)

const readByQueryName = "readByQuery"

var readByQueryOptions = []string{"control_id", "object", "fields", "query", "page_size", "return_format", "doc_par_id"}

// ReadByQueryParams configures a readByQuery. Zero values mean "not
// supplied", so PageSize 0 selects DefaultPageSize.
type ReadByQueryParams struct {
	ControlID    string   `yaml:"control_id"`
	Object       string   `yaml:"object"`
	Fields       []string `yaml:"fields"`
	Query        string   `yaml:"query"`
	PageSize     int      `yaml:"page_size"`
	ReturnFormat string   `yaml:"return_format"`
	DocParID     string   `yaml:"doc_par_id"`
}

func (p ReadByQueryParams) resolve() ReadByQueryParams {
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	return ReadByQueryParams{
		ControlID:    orDefault(p.ControlID, readByQueryName),
		Object:       p.Object,
		Fields:       slices.Clone(p.Fields),
		Query:        p.Query,
		PageSize:     pageSize,
		ReturnFormat: orDefault(p.ReturnFormat, DefaultReturnFormat),
		DocParID:     p.DocParID,
	}
}

// ReadByQuery fetches the first page of records matching a query. An empty
// query matches every record.
type ReadByQuery struct {
	p ReadByQueryParams
}

// NewReadByQuery fills defaults and validates params. page_size must fall
// within 1..MaxPageSize.
func NewReadByQuery(params ReadByQueryParams) (*ReadByQuery, error) {
	p := params.resolve()

	if err := requireString("object", p.Object); err != nil {
		return nil, err
	}
	if err := requireRange("page_size", p.PageSize, 1, MaxPageSize); err != nil {
		return nil, err
	}
	if err := requireOneOf("return_format", p.ReturnFormat, ReturnFormats); err != nil {
		return nil, err
	}

	return &ReadByQuery{p: p}, nil
}

func readByQueryFromValues(v Values) (Function, error) {
	var (
		p   ReadByQueryParams
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
	if p.Query, err = v.String("query"); err != nil {
		return nil, err
	}
	if p.PageSize, err = v.Int("page_size"); err != nil {
		return nil, err
	}
	if p.ReturnFormat, err = v.String("return_format"); err != nil {
		return nil, err
	}
	if p.DocParID, err = v.String("doc_par_id"); err != nil {
		return nil, err
	}
	return NewReadByQuery(p)
}

func (r *ReadByQuery) Name() string      { return readByQueryName }
func (r *ReadByQuery) ControlID() string { return r.p.ControlID }

// WriteXML always writes <query>, empty when no query is set. docparid is
// only written when set.
func (r *ReadByQuery) WriteXML(w xmlwriter.Sink) error {
	return writeFunction(w, r.p.ControlID, readByQueryName, func() error {
		err := writeElements(w,
			"object", r.p.Object,
			"fields", joinFields(r.p.Fields),
			"query", r.p.Query,
			"pagesize", strconv.Itoa(r.p.PageSize),
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
