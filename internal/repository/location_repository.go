package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/geolibrary/service-location/internal/domain/geo"
	locationDomain "github.com/geolibrary/service-location/internal/domain/location"
	"gorm.io/gorm"
)

// LocationModel is the GORM model for the locations table.
type LocationModel struct {
	ID          int64        `gorm:"primaryKey;autoIncrement"`
	Name        string       `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description *string      `gorm:"type:text"`
	Latitude    float64      `gorm:"not null"`
	Longitude   float64      `gorm:"not null"`
	Photos      []PhotoModel `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the GORM model.
func (LocationModel) TableName() string { return "locations" }

// GormLocationRepository is the GORM-based implementation of
// location.Repository. Every mutating operation runs as one transaction:
// committed on success, rolled back on any failure. When constructed over
// a *gorm.DB that is itself a transaction, GORM nests via savepoints and
// the caller owns the outer boundary.
//
// A repository instance holds no mutable state of its own; sharing one
// across goroutines is as safe as sharing the underlying *gorm.DB.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Create persists a new location. The in-transaction name lookup is the
// friendly fast-fail; the unique index on locations.name is what actually
// guarantees uniqueness against concurrent writers, and a unique
// violation from the insert maps to the same *DuplicateNameError.
func (r *GormLocationRepository) Create(ctx context.Context, loc *locationDomain.Location) (*locationDomain.Location, error) {
	model := toLocationModel(loc)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&LocationModel{}).Where("name = ?", loc.Name()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		if count > 0 {
			return &locationDomain.DuplicateNameError{Name: loc.Name()}
		}
		return tx.Create(model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &locationDomain.DuplicateNameError{Name: loc.Name()}
		}
		return nil, wrapStorage("create location", err)
	}
	return toDomainLocation(model), nil
}

// FindByID returns the location with the given ID, or (nil, nil) on miss.
func (r *GormLocationRepository) FindByID(ctx context.Context, id int64) (*locationDomain.Location, error) {
	var model LocationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStorage("find location by id", err)
	}
	return toDomainLocation(&model), nil
}

// FindByName returns the location with the exact name, or (nil, nil).
// The match is case-sensitive.
func (r *GormLocationRepository) FindByName(ctx context.Context, name string) (*locationDomain.Location, error) {
	var model LocationModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStorage("find location by name", err)
	}
	return toDomainLocation(&model), nil
}

// Update applies a sparse change set inside one transaction. Fields not
// present in the update are left untouched. Returns (nil, nil) if the ID
// does not exist.
func (r *GormLocationRepository) Update(ctx context.Context, id int64, update locationDomain.Update) (*locationDomain.Location, error) {
	var result *locationDomain.Location
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model LocationModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // absence is not an error
			}
			return fmt.Errorf("failed to load location: %w", err)
		}

		if update.IsEmpty() {
			// Nothing to write; return the current state.
			result = toDomainLocation(&model)
			return nil
		}

		if update.Renames(model.Name) {
			var count int64
			if err := tx.Model(&LocationModel{}).Where("name = ?", *update.Name).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check name uniqueness: %w", err)
			}
			if count > 0 {
				return &locationDomain.DuplicateNameError{Name: *update.Name}
			}
		}

		loc := toDomainLocation(&model)
		loc.Apply(update)
		updated := toLocationModel(loc)
		updated.ID = id

		// Updates via map so that zero values and NULL descriptions are
		// written as-is.
		if err := tx.Model(&LocationModel{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":        updated.Name,
			"description": updated.Description,
			"latitude":    updated.Latitude,
			"longitude":   updated.Longitude,
		}).Error; err != nil {
			return err
		}

		result = toDomainLocation(updated)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) && update.Name != nil {
			return nil, &locationDomain.DuplicateNameError{Name: *update.Name}
		}
		return nil, wrapStorage("update location", err)
	}
	return result, nil
}

// Delete removes a location; photos go with it via the ON DELETE CASCADE
// foreign key. Returns false, never an error, when the ID does not exist.
func (r *GormLocationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&LocationModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, wrapStorage("delete location", err)
	}
	return deleted, nil
}

// List returns all locations in storage order. No sort is applied or
// guaranteed.
func (r *GormLocationRepository) List(ctx context.Context) ([]*locationDomain.Location, error) {
	var models []LocationModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, wrapStorage("list locations", err)
	}
	locations := make([]*locationDomain.Location, len(models))
	for i := range models {
		locations[i] = toDomainLocation(&models[i])
	}
	return locations, nil
}

// FindInPolygon loads all locations and keeps those whose coordinates
// fall inside the polygon. There is no spatial index; this is a full
// scan by design.
func (r *GormLocationRepository) FindInPolygon(ctx context.Context, polygon geo.Polygon) ([]*locationDomain.Location, error) {
	var models []LocationModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, wrapStorage("find locations in polygon", err)
	}
	return filterInPolygon(models, polygon), nil
}

// filterInPolygon runs each row through the geometry evaluator, keeping
// scan order.
func filterInPolygon(models []LocationModel, polygon geo.Polygon) []*locationDomain.Location {
	matched := make([]*locationDomain.Location, 0, len(models))
	for i := range models {
		m := &models[i]
		if polygon.Contains(geo.Point{Latitude: m.Latitude, Longitude: m.Longitude}) {
			matched = append(matched, toDomainLocation(m))
		}
	}
	return matched
}

// wrapStorage wraps driver failures as *StorageError; domain errors pass
// through untouched.
func wrapStorage(op string, err error) error {
	var dup *locationDomain.DuplicateNameError
	if errors.As(err, &dup) {
		return err
	}
	return &locationDomain.StorageError{Op: op, Err: err}
}

// --- Conversions ---

func toLocationModel(l *locationDomain.Location) *LocationModel {
	return &LocationModel{
		ID:          l.ID(),
		Name:        l.Name(),
		Description: l.Description(),
		Latitude:    l.Latitude(),
		Longitude:   l.Longitude(),
	}
}

func toDomainLocation(m *LocationModel) *locationDomain.Location {
	return locationDomain.Reconstruct(m.ID, m.Name, m.Description, m.Latitude, m.Longitude)
}
