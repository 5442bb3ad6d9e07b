package models

import "time"

// Coordinates is a value object embedded into every route. It has no
// independent identity requirements; a row is persisted per owning route
// (and per standalone import entry).
type Coordinates struct {
	ID int64 `json:"id"`

	// X is unbounded for catalog routes; geo-validated imports require
	// X within [-180, 180].
	X float64 `json:"x"`

	// Y must not exceed 552; geo-validated imports additionally require
	// Y within [-90, 90].
	Y float64 `json:"y"`
}

// Location is a named point referenced by routes as origin or destination.
type Location struct {
	ID   int64   `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name"`
}

// Route is a named directed connection between two locations.
//
// The route name is globally unique under case-insensitive comparison;
// the database backstop for that invariant is a unique index on lower(name).
// CreationDate and CreatedBy are fixed at creation and never change.
type Route struct {
	ID int64 `json:"id"`

	// Name is non-blank and unique case-insensitively across all routes.
	Name string `json:"name"`

	Coordinates Coordinates `json:"coordinates"`

	// CreationDate is stamped by the server at creation time and is immutable.
	CreationDate time.Time `json:"creation_date"`

	// From is the required origin location.
	From Location `json:"from"`

	// To is the optional destination location.
	To *Location `json:"to,omitempty"`

	// Distance is optional; when present it must be greater than 1.
	Distance *int64 `json:"distance,omitempty"`

	// Rating is required and must be greater than 0.
	Rating int64 `json:"rating"`

	// CreatedBy is the owning user, fixed at creation.
	CreatedBy User `json:"created_by"`

	// AllowAdminEditing, when set by the owner, permits administrators
	// to update or delete the route on the owner's behalf.
	AllowAdminEditing bool `json:"allow_admin_editing"`
}

// TableName returns the name of the database table
// associated with the Route model.
func (r Route) TableName() string {
	return "routes"
}
