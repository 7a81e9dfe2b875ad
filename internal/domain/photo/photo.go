package photo

import "fmt"

// Photo is a file reference owned by exactly one location. Deleting the
// owning location deletes its photos.
type Photo struct {
	id         int64
	locationID int64
	filename   string
}

// NewPhoto creates a not-yet-persisted photo for a location.
func NewPhoto(locationID int64, filename string) (*Photo, error) {
	if filename == "" {
		return nil, fmt.Errorf("photo filename is required")
	}
	return &Photo{
		locationID: locationID,
		filename:   filename,
	}, nil
}

// Reconstruct rebuilds a Photo from persistence data.
func Reconstruct(id, locationID int64, filename string) *Photo {
	return &Photo{
		id:         id,
		locationID: locationID,
		filename:   filename,
	}
}

func (p *Photo) ID() int64         { return p.id }
func (p *Photo) LocationID() int64 { return p.locationID }
func (p *Photo) Filename() string  { return p.filename }
