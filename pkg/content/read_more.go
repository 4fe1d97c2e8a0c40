package content

import "github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"

const readMoreName = "readMore"

var readMoreOptions = []string{"control_id", "result_id"}

// ReadMoreParams configures a readMore.
type ReadMoreParams struct {
	ControlID string `yaml:"control_id"`
	ResultID  string `yaml:"result_id"`
}

// ReadMore fetches the next page of a previous readByQuery result.
type ReadMore struct {
	controlID string
	resultID  string
}

// NewReadMore requires result_id.
func NewReadMore(params ReadMoreParams) (*ReadMore, error) {
	if err := requireString("result_id", params.ResultID); err != nil {
		return nil, err
	}

	return &ReadMore{
		controlID: orDefault(params.ControlID, readMoreName),
		resultID:  params.ResultID,
	}, nil
}

func readMoreFromValues(v Values) (Function, error) {
	var (
		p   ReadMoreParams
		err error
	)
	if p.ControlID, err = v.String("control_id"); err != nil {
		return nil, err
	}
	if p.ResultID, err = v.String("result_id"); err != nil {
		return nil, err
	}
	return NewReadMore(p)
}

func (r *ReadMore) Name() string      { return readMoreName }
func (r *ReadMore) ControlID() string { return r.controlID }

// WriteXML writes the result id as <resultId>.
func (r *ReadMore) WriteXML(w xmlwriter.Sink) error {
	return writeFunction(w, r.controlID, readMoreName, func() error {
		return w.WriteElement("resultId", r.resultID)
	})
}
