package repository

import (
	"context"

	photoDomain "github.com/geolibrary/service-location/internal/domain/photo"
	"gorm.io/gorm"
)

// PhotoModel is the GORM model for the photos table.
type PhotoModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Filename   string `gorm:"type:varchar(512);not null"`
	LocationID int64  `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (PhotoModel) TableName() string { return "photos" }

// GormPhotoRepository implements photo.Repository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Save persists a new photo. A missing owning location surfaces as a
// *StorageError wrapping the foreign key violation.
func (r *GormPhotoRepository) Save(ctx context.Context, p *photoDomain.Photo) (*photoDomain.Photo, error) {
	model := toPhotoModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, wrapStorage("save photo", err)
	}
	return toDomainPhoto(model), nil
}

// FindByLocationID returns all photos attached to a location, in storage
// order.
func (r *GormPhotoRepository) FindByLocationID(ctx context.Context, locationID int64) ([]*photoDomain.Photo, error) {
	var models []PhotoModel
	if err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Find(&models).Error; err != nil {
		return nil, wrapStorage("find photos by location", err)
	}
	photos := make([]*photoDomain.Photo, len(models))
	for i := range models {
		photos[i] = toDomainPhoto(&models[i])
	}
	return photos, nil
}

func toPhotoModel(p *photoDomain.Photo) *PhotoModel {
	return &PhotoModel{
		ID:         p.ID(),
		Filename:   p.Filename(),
		LocationID: p.LocationID(),
	}
}

func toDomainPhoto(m *PhotoModel) *photoDomain.Photo {
	return photoDomain.Reconstruct(m.ID, m.LocationID, m.Filename)
}
