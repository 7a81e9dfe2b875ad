package location

import "fmt"

// Location is the aggregate root for a catalog entry: a named point on
// Earth with an optional description. The ID is assigned by storage on
// first save and never changes afterwards.
//
// Latitude and longitude ranges are intentionally not validated here; the
// catalog stores whatever coordinates the caller supplies.
type Location struct {
	id          int64
	name        string
	description *string
	latitude    float64
	longitude   float64
}

// NewLocation creates a not-yet-persisted location with validated fields.
func NewLocation(name string, latitude, longitude float64, description *string) (*Location, error) {
	if name == "" {
		return nil, fmt.Errorf("location name is required")
	}
	return &Location{
		name:        name,
		description: description,
		latitude:    latitude,
		longitude:   longitude,
	}, nil
}

// Reconstruct rebuilds a Location from persistence data (no validation).
func Reconstruct(id int64, name string, description *string, latitude, longitude float64) *Location {
	return &Location{
		id:          id,
		name:        name,
		description: description,
		latitude:    latitude,
		longitude:   longitude,
	}
}

// --- Getters ---

func (l *Location) ID() int64            { return l.id }
func (l *Location) Name() string         { return l.name }
func (l *Location) Description() *string { return l.description }
func (l *Location) Latitude() float64    { return l.latitude }
func (l *Location) Longitude() float64   { return l.longitude }

// Update is a sparse change set for a Location. Nil fields are left
// untouched when applied.
type Update struct {
	Name        *string
	Description *string
	Latitude    *float64
	Longitude   *float64
}

// IsEmpty reports whether the update would change nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Latitude == nil && u.Longitude == nil
}

// Renames reports whether applying the update would give the location a
// name different from current.
func (u Update) Renames(current string) bool {
	return u.Name != nil && *u.Name != current
}

// Apply merges the update into the location, field by field.
func (l *Location) Apply(u Update) {
	if u.Name != nil {
		l.name = *u.Name
	}
	if u.Description != nil {
		l.description = u.Description
	}
	if u.Latitude != nil {
		l.latitude = *u.Latitude
	}
	if u.Longitude != nil {
		l.longitude = *u.Longitude
	}
}
