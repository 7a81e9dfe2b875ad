package location

import (
	"context"

	"github.com/geolibrary/service-location/internal/domain/geo"
)

// Repository defines persistence operations for locations. Each call is
// one unit of work: mutations commit on success and roll back completely
// on failure. Lookups signal absence with a nil location and nil error
// rather than a sentinel error.
type Repository interface {
	// Create persists a new location and returns it with its assigned ID.
	// Fails with *DuplicateNameError if the name is already taken.
	Create(ctx context.Context, loc *Location) (*Location, error)

	// FindByID returns the location with the given ID, or (nil, nil).
	FindByID(ctx context.Context, id int64) (*Location, error)

	// FindByName returns the location with the exact, case-sensitive
	// name, or (nil, nil).
	FindByName(ctx context.Context, name string) (*Location, error)

	// Update applies a sparse change set and returns the updated
	// location, or (nil, nil) if the ID does not exist. Renaming to an
	// existing name fails with *DuplicateNameError.
	Update(ctx context.Context, id int64, update Update) (*Location, error)

	// Delete removes the location and, by cascade, its photos. Returns
	// false (not an error) if the ID does not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// List returns all locations in storage order.
	List(ctx context.Context) ([]*Location, error)

	// FindInPolygon returns the locations whose coordinates fall inside
	// the polygon. Full scan; order follows storage order.
	FindInPolygon(ctx context.Context, polygon geo.Polygon) ([]*Location, error)
}
