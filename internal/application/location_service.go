package application

import (
	"context"
	"fmt"

	"github.com/geolibrary/service-location/internal/domain/geo"
	locationDomain "github.com/geolibrary/service-location/internal/domain/location"
	"github.com/geolibrary/service-location/internal/events"
	"go.uber.org/zap"
)

// eventSource identifies this service in published CloudEvents.
const eventSource = "service-location"

// EventPublisher is the slice of the Kafka producer the services need.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, ce events.CloudEvent) error
}

// CreateLocationRequest is the request DTO for creating a location.
// Latitude and longitude are pointers so that 0.0 passes required
// validation.
type CreateLocationRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
}

// UpdateLocationRequest is the request DTO for a sparse location update.
// Absent fields are left unchanged.
type UpdateLocationRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// LocationDTO is the API response representation of a location.
type LocationDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// LocationService implements use cases for catalog management.
type LocationService struct {
	repo     locationDomain.Repository
	producer EventPublisher
	logger   *zap.Logger
}

// NewLocationService creates a new LocationService.
func NewLocationService(repo locationDomain.Repository, producer EventPublisher, logger *zap.Logger) *LocationService {
	return &LocationService{repo: repo, producer: producer, logger: logger}
}

// CreateLocation creates a new catalog entry.
func (s *LocationService) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationDTO, error) {
	loc, err := locationDomain.NewLocation(req.Name, *req.Latitude, *req.Longitude, req.Description)
	if err != nil {
		return nil, fmt.Errorf("invalid location data: %w", err)
	}

	created, err := s.repo.Create(ctx, loc)
	if err != nil {
		if !locationDomain.IsDuplicateName(err) {
			s.logger.Error("failed to create location", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("location created",
		zap.Int64("location_id", created.ID()),
		zap.String("name", created.Name()),
	)
	s.publish(ctx, events.LocationCreated, events.LocationEvent{
		LocationID: created.ID(),
		Name:       created.Name(),
		Latitude:   created.Latitude(),
		Longitude:  created.Longitude(),
	})

	result := toLocationDTO(created)
	return &result, nil
}

// GetLocation returns a location by ID, or (nil, nil) if absent.
func (s *LocationService) GetLocation(ctx context.Context, id int64) (*LocationDTO, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if loc == nil {
		return nil, nil
	}
	result := toLocationDTO(loc)
	return &result, nil
}

// GetLocationByName returns a location by exact name, or (nil, nil).
func (s *LocationService) GetLocationByName(ctx context.Context, name string) (*LocationDTO, error) {
	loc, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get location by name: %w", err)
	}
	if loc == nil {
		return nil, nil
	}
	result := toLocationDTO(loc)
	return &result, nil
}

// UpdateLocation applies a sparse update. Returns (nil, nil) if the ID
// does not exist.
func (s *LocationService) UpdateLocation(ctx context.Context, id int64, req UpdateLocationRequest) (*LocationDTO, error) {
	update := locationDomain.Update{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if !locationDomain.IsDuplicateName(err) {
			s.logger.Error("failed to update location", zap.Error(err))
		}
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	s.logger.Info("location updated", zap.Int64("location_id", id))
	s.publish(ctx, events.LocationUpdated, events.LocationEvent{
		LocationID: updated.ID(),
		Name:       updated.Name(),
		Latitude:   updated.Latitude(),
		Longitude:  updated.Longitude(),
	})

	result := toLocationDTO(updated)
	return &result, nil
}

// DeleteLocation removes a location and its photos. Returns false when
// the ID does not exist.
func (s *LocationService) DeleteLocation(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete location", zap.Error(err))
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.logger.Info("location deleted", zap.Int64("location_id", id))
	s.publish(ctx, events.LocationDeleted, events.LocationEvent{LocationID: id})
	return true, nil
}

// ListLocations returns the whole catalog.
func (s *LocationService) ListLocations(ctx context.Context) ([]LocationDTO, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return toLocationDTOs(locations), nil
}

// SearchArea returns the locations inside the polygon.
func (s *LocationService) SearchArea(ctx context.Context, polygon geo.Polygon) ([]LocationDTO, error) {
	locations, err := s.repo.FindInPolygon(ctx, polygon)
	if err != nil {
		return nil, fmt.Errorf("failed to search area: %w", err)
	}
	return toLocationDTOs(locations), nil
}

// publish sends a change event. Best-effort: the mutation has already
// committed, so a publish failure is logged and swallowed.
func (s *LocationService) publish(ctx context.Context, eventType string, payload interface{}) {
	ce, err := events.NewCloudEvent(eventSource, eventType, payload)
	if err != nil {
		s.logger.Error("failed to build event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicLocationEvents, ce); err != nil {
		s.logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func toLocationDTO(l *locationDomain.Location) LocationDTO {
	return LocationDTO{
		ID:          l.ID(),
		Name:        l.Name(),
		Description: l.Description(),
		Latitude:    l.Latitude(),
		Longitude:   l.Longitude(),
	}
}

func toLocationDTOs(locations []*locationDomain.Location) []LocationDTO {
	dtos := make([]LocationDTO, len(locations))
	for i, l := range locations {
		dtos[i] = toLocationDTO(l)
	}
	return dtos
}
