package photo

import "context"

// Repository defines persistence operations for location photos.
type Repository interface {
	// Save persists a new photo and returns it with its assigned ID.
	Save(ctx context.Context, p *Photo) (*Photo, error)

	// FindByLocationID returns all photos attached to a location.
	FindByLocationID(ctx context.Context, locationID int64) ([]*Photo, error)
}
