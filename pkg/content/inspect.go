package content

import "github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"

const inspectName = "inspect"

var inspectOptions = []string{"control_id", "object", "detail"}

// InspectParams configures an inspect.
type InspectParams struct {
	ControlID string `yaml:"control_id"`
	Object    string `yaml:"object"`
	Detail    bool   `yaml:"detail"`
}

// Inspect describes the fields of an object.
type Inspect struct {
	controlID string
	object    string
	detail    bool
}

// NewInspect validates params and builds an Inspect.
func NewInspect(params InspectParams) (*Inspect, error) {
	if err := requireString("object", params.Object); err != nil {
		return nil, err
	}

	return &Inspect{
		controlID: orDefault(params.ControlID, inspectName),
		object:    params.Object,
		detail:    params.Detail,
	}, nil
}

func inspectFromValues(v Values) (Function, error) {
	var (
		p   InspectParams
		err error
	)
	if p.ControlID, err = v.String("control_id"); err != nil {
		return nil, err
	}
	if p.Object, err = v.String("object"); err != nil {
		return nil, err
	}
	if p.Detail, err = v.Bool("detail"); err != nil {
		return nil, err
	}
	return NewInspect(p)
}

func (i *Inspect) Name() string      { return inspectName }
func (i *Inspect) ControlID() string { return i.controlID }

// WriteXML writes detail="1" on the inspect element when detail is set.
func (i *Inspect) WriteXML(w xmlwriter.Sink) error {
	return writeFunction(w, i.controlID, inspectName, func() error {
		if i.detail {
			if err := w.WriteAttribute("detail", "1"); err != nil {
				return err
			}
		}
		return w.WriteElement("object", i.object)
	})
}
