package models

// CoordinatesInput carries caller-supplied coordinate values. Pointers
// distinguish "absent" from zero: an update that includes coordinates must
// supply both axes.
type CoordinatesInput struct {
	X *float64 `json:"x" yaml:"x"`
	Y *float64 `json:"y" yaml:"y"`
}

// LocationInput carries a caller-supplied location. When ID is set the stored
// record with that identifier is reused; otherwise a new location is persisted.
type LocationInput struct {
	ID   *int64  `json:"id,omitempty" yaml:"id,omitempty"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Name string  `json:"name" yaml:"name"`
}

// RouteInput is the payload for route creation, used by both the single-route
// path and the bulk import pipeline.
type RouteInput struct {
	Name              string           `json:"name" yaml:"name"`
	Coordinates       CoordinatesInput `json:"coordinates" yaml:"coordinates"`
	From              LocationInput    `json:"from" yaml:"from"`
	To                *LocationInput   `json:"to,omitempty" yaml:"to,omitempty"`
	Distance          *int64           `json:"distance,omitempty" yaml:"distance,omitempty"`
	Rating            int64            `json:"rating" yaml:"rating"`
	AllowAdminEditing bool             `json:"allow_admin_editing" yaml:"allowAdminEditing"`
}

// RouteUpdate is the payload for a partial route update. Nil fields are left
// untouched; Name is applied only when non-blank; Rating is mandatory and must
// be positive; AllowAdminEditing is always overwritten with the supplied value.
type RouteUpdate struct {
	Name              string            `json:"name"`
	Coordinates       *CoordinatesInput `json:"coordinates,omitempty"`
	From              *LocationInput    `json:"from,omitempty"`
	To                *LocationInput    `json:"to,omitempty"`
	Distance          *int64            `json:"distance,omitempty"`
	Rating            int64             `json:"rating"`
	AllowAdminEditing bool              `json:"allow_admin_editing"`
}

// ImportDocument is the parsed form of a bulk-import file: three candidate
// record lists. Any other top-level content in the source document is a parse
// error, never silently ignored.
type ImportDocument struct {
	Coordinates []CoordinatesInput `yaml:"coordinates"`
	Locations   []LocationInput    `yaml:"locations"`
	Routes      []RouteInput       `yaml:"routes"`
}

// AuthRequest is the register/login payload.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse returns the signed token issued after successful
// registration or login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}
