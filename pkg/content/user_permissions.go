package content

import "github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"

const getUserPermissionsName = "getUserPermissions"

var getUserPermissionsOptions = []string{"control_id", "user_id"}

// GetUserPermissionsParams configures a getUserPermissions.
type GetUserPermissionsParams struct {
	ControlID string `yaml:"control_id"`
	UserID    string `yaml:"user_id"`
}

// GetUserPermissions lists the permissions granted to one user.
type GetUserPermissions struct {
	controlID string
	userID    string
}

// NewGetUserPermissions validates params and builds a GetUserPermissions.
func NewGetUserPermissions(params GetUserPermissionsParams) (*GetUserPermissions, error) {
	if err := requireString("user_id", params.UserID); err != nil {
		return nil, err
	}

	return &GetUserPermissions{
		controlID: orDefault(params.ControlID, getUserPermissionsName),
		userID:    params.UserID,
	}, nil
}

func getUserPermissionsFromValues(v Values) (Function, error) {
	var (
		p   GetUserPermissionsParams
		err error
	)
	if p.ControlID, err = v.String("control_id"); err != nil {
		return nil, err
	}
	if p.UserID, err = v.String("user_id"); err != nil {
		return nil, err
	}
	return NewGetUserPermissions(p)
}

func (g *GetUserPermissions) Name() string      { return getUserPermissionsName }
func (g *GetUserPermissions) ControlID() string { return g.controlID }

// WriteXML writes the user as <userId>.
func (g *GetUserPermissions) WriteXML(w xmlwriter.Sink) error {
	return writeFunction(w, g.controlID, getUserPermissionsName, func() error {
		return w.WriteElement("userId", g.userID)
	})
}
