package application

import (
	"context"
	"fmt"

	locationDomain "github.com/geolibrary/service-location/internal/domain/location"
	photoDomain "github.com/geolibrary/service-location/internal/domain/photo"
	"github.com/geolibrary/service-location/internal/events"
	"go.uber.org/zap"
)

// AttachPhotoRequest holds the data to attach a photo to a location.
type AttachPhotoRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// PhotoDTO is the API response representation of a photo.
type PhotoDTO struct {
	ID         int64  `json:"id"`
	LocationID int64  `json:"location_id"`
	Filename   string `json:"filename"`
}

// PhotoService handles photo attachment use cases.
type PhotoService struct {
	photos    photoDomain.Repository
	locations locationDomain.Repository
	producer  EventPublisher
	logger    *zap.Logger
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(photos photoDomain.Repository, locations locationDomain.Repository, producer EventPublisher, logger *zap.Logger) *PhotoService {
	return &PhotoService{photos: photos, locations: locations, producer: producer, logger: logger}
}

// AttachPhoto stores a photo reference for a location. Returns (nil, nil)
// when the location does not exist.
func (s *PhotoService) AttachPhoto(ctx context.Context, locationID int64, req AttachPhotoRequest) (*PhotoDTO, error) {
	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up location: %w", err)
	}
	if loc == nil {
		return nil, nil
	}

	p, err := photoDomain.NewPhoto(locationID, req.Filename)
	if err != nil {
		return nil, fmt.Errorf("invalid photo data: %w", err)
	}

	saved, err := s.photos.Save(ctx, p)
	if err != nil {
		s.logger.Error("failed to attach photo", zap.Error(err))
		return nil, err
	}

	s.logger.Info("photo attached",
		zap.Int64("location_id", locationID),
		zap.String("filename", saved.Filename()),
	)

	ce, err := events.NewCloudEvent(eventSource, events.PhotoAttached, events.PhotoAttachedEvent{
		LocationID: locationID,
		PhotoID:    saved.ID(),
		Filename:   saved.Filename(),
	})
	if err == nil {
		if err := s.producer.PublishEvent(ctx, events.TopicLocationEvents, ce); err != nil {
			s.logger.Error("failed to publish photo event", zap.Error(err))
		}
	}

	result := toPhotoDTO(saved)
	return &result, nil
}

// ListPhotos returns all photos attached to a location.
func (s *PhotoService) ListPhotos(ctx context.Context, locationID int64) ([]PhotoDTO, error) {
	photos, err := s.photos.FindByLocationID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	dtos := make([]PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toPhotoDTO(p)
	}
	return dtos, nil
}

func toPhotoDTO(p *photoDomain.Photo) PhotoDTO {
	return PhotoDTO{
		ID:         p.ID(),
		LocationID: p.LocationID(),
		Filename:   p.Filename(),
	}
}
