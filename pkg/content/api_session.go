package content

import "github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"

const getAPISessionName = "getAPISession"

var getAPISessionOptions = []string{"control_id"}

// GetAPISessionParams configures a getAPISession.
type GetAPISessionParams struct {
	ControlID string `yaml:"control_id"`
}

// GetAPISession requests a session id for the authenticated user.
type GetAPISession struct {
	controlID string
}

// NewGetAPISession builds a GetAPISession. It has no required options, so
// the error is always nil; the signature matches the other constructors.
func NewGetAPISession(params GetAPISessionParams) (*GetAPISession, error) {
	return &GetAPISession{controlID: orDefault(params.ControlID, getAPISessionName)}, nil
}

func getAPISessionFromValues(v Values) (Function, error) {
	controlID, err := v.String("control_id")
	if err != nil {
		return nil, err
	}
	return NewGetAPISession(GetAPISessionParams{ControlID: controlID})
}

func (g *GetAPISession) Name() string      { return getAPISessionName }
func (g *GetAPISession) ControlID() string { return g.controlID }

// WriteXML writes an empty <getAPISession></getAPISession> body.
func (g *GetAPISession) WriteXML(w xmlwriter.Sink) error {
	return writeFunction(w, g.controlID, getAPISessionName, nil)
}
