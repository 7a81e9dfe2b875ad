package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geolibrary/service-location/internal/domain/geo"
	locationDomain "github.com/geolibrary/service-location/internal/domain/location"
	photoDomain "github.com/geolibrary/service-location/internal/domain/photo"
	"github.com/geolibrary/service-location/internal/events"
)

// fakeLocationRepo is an in-memory location.Repository with the same
// semantics as the GORM implementation.
type fakeLocationRepo struct {
	nextID int64
	order  []int64
	byID   map[int64]*locationDomain.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: make(map[int64]*locationDomain.Location)}
}

func (f *fakeLocationRepo) Create(_ context.Context, loc *locationDomain.Location) (*locationDomain.Location, error) {
	for _, id := range f.order {
		if f.byID[id].Name() == loc.Name() {
			return nil, &locationDomain.DuplicateNameError{Name: loc.Name()}
		}
	}
	f.nextID++
	created := locationDomain.Reconstruct(f.nextID, loc.Name(), loc.Description(), loc.Latitude(), loc.Longitude())
	f.byID[f.nextID] = created
	f.order = append(f.order, f.nextID)
	return created, nil
}

func (f *fakeLocationRepo) FindByID(_ context.Context, id int64) (*locationDomain.Location, error) {
	return f.byID[id], nil
}

func (f *fakeLocationRepo) FindByName(_ context.Context, name string) (*locationDomain.Location, error) {
	for _, id := range f.order {
		if f.byID[id].Name() == name {
			return f.byID[id], nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, id int64, update locationDomain.Update) (*locationDomain.Location, error) {
	loc, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	if update.Renames(loc.Name()) {
		for _, otherID := range f.order {
			if otherID != id && f.byID[otherID].Name() == *update.Name {
				return nil, &locationDomain.DuplicateNameError{Name: *update.Name}
			}
		}
	}
	loc.Apply(update)
	return loc, nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	for i, otherID := range f.order {
		if otherID == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]*locationDomain.Location, error) {
	out := make([]*locationDomain.Location, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeLocationRepo) FindInPolygon(ctx context.Context, polygon geo.Polygon) ([]*locationDomain.Location, error) {
	all, _ := f.List(ctx)
	matched := make([]*locationDomain.Location, 0, len(all))
	for _, loc := range all {
		if polygon.Contains(geo.Point{Latitude: loc.Latitude(), Longitude: loc.Longitude()}) {
			matched = append(matched, loc)
		}
	}
	return matched, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	published []events.CloudEvent
	err       error
}

func (f *fakePublisher) PublishEvent(_ context.Context, _ string, ce events.CloudEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, ce)
	return nil
}

func newTestService() (*LocationService, *fakeLocationRepo, *fakePublisher) {
	repo := newFakeLocationRepo()
	pub := &fakePublisher{}
	return NewLocationService(repo, pub, zap.NewNop()), repo, pub
}

func createReq(name string, lat, lon float64) CreateLocationRequest {
	return CreateLocationRequest{Name: name, Latitude: &lat, Longitude: &lon}
}

func TestCreateLocation_RoundTrip(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	desc := "test location"
	req := createReq("Liberty Island", 40.6892, -74.0445)
	req.Description = &desc

	created, err := svc.CreateLocation(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Liberty Island", created.Name)
	assert.Equal(t, 40.6892, created.Latitude)
	assert.Equal(t, -74.0445, created.Longitude)
	require.NotNil(t, created.Description)
	assert.Equal(t, "test location", *created.Description)

	fetched, err := svc.GetLocation(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, *created, *fetched)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.LocationCreated, pub.published[0].Type)
}

func TestCreateLocation_DuplicateName(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, createReq("Eiffel Tower", 48.8584, 2.2945))
	require.NoError(t, err)

	_, err = svc.CreateLocation(ctx, createReq("Eiffel Tower", 0, 0))
	require.Error(t, err)
	assert.True(t, locationDomain.IsDuplicateName(err))
	assert.Len(t, pub.published, 1)
}

func TestGetLocation_MissIsNotAnError(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.GetLocation(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, got)

	byName, err := svc.GetLocationByName(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, byName)
}

func TestUpdateLocation_PartialUpdate(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	created, err := svc.CreateLocation(ctx, createReq("Original", 40.0, -74.0))
	require.NoError(t, err)

	desc := "added later"
	updated, err := svc.UpdateLocation(ctx, created.ID, UpdateLocationRequest{Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Original", updated.Name)
	assert.Equal(t, 40.0, updated.Latitude)
	assert.Equal(t, -74.0, updated.Longitude)
	assert.Equal(t, "added later", *updated.Description)

	require.Len(t, pub.published, 2)
	assert.Equal(t, events.LocationUpdated, pub.published[1].Type)
}

func TestUpdateLocation_RenameCollision(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, createReq("First", 1, 1))
	require.NoError(t, err)
	second, err := svc.CreateLocation(ctx, createReq("Second", 2, 2))
	require.NoError(t, err)

	name := "First"
	_, err = svc.UpdateLocation(ctx, second.ID, UpdateLocationRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, locationDomain.IsDuplicateName(err))
}

func TestUpdateLocation_MissReturnsNil(t *testing.T) {
	svc, _, _ := newTestService()

	name := "anything"
	updated, err := svc.UpdateLocation(context.Background(), 42, UpdateLocationRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteLocation(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	created, err := svc.CreateLocation(ctx, createReq("Doomed", 1, 1))
	require.NoError(t, err)

	deleted, err := svc.DeleteLocation(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Idempotent-safe: a second delete is a miss, not an error.
	deleted, err = svc.DeleteLocation(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.Len(t, pub.published, 2)
	assert.Equal(t, events.LocationDeleted, pub.published[1].Type)
}

func TestDeleteLocation_PublishFailureDoesNotFailCall(t *testing.T) {
	repo := newFakeLocationRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewLocationService(repo, pub, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateLocation(ctx, createReq("Still Works", 1, 1))
	require.NoError(t, err)

	deleted, err := svc.DeleteLocation(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestSearchArea(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, createReq("A", 40.0, -74.0))
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, createReq("B", 41.0, -74.0))
	require.NoError(t, err)

	wide := geo.Polygon{
		{Latitude: 39, Longitude: -75},
		{Latitude: 42, Longitude: -75},
		{Latitude: 42, Longitude: -73},
		{Latitude: 39, Longitude: -73},
	}
	results, err := svc.SearchArea(ctx, wide)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Name)
	assert.Equal(t, "B", results[1].Name)

	narrow := geo.Polygon{
		{Latitude: 39, Longitude: -75},
		{Latitude: 40.5, Longitude: -75},
		{Latitude: 40.5, Longitude: -73},
		{Latitude: 39, Longitude: -73},
	}
	results, err = svc.SearchArea(ctx, narrow)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Name)
}

// fakePhotoRepo is an in-memory photo.Repository.
type fakePhotoRepo struct {
	nextID int64
	photos []*photoDomain.Photo
}

func (f *fakePhotoRepo) Save(_ context.Context, p *photoDomain.Photo) (*photoDomain.Photo, error) {
	f.nextID++
	saved := photoDomain.Reconstruct(f.nextID, p.LocationID(), p.Filename())
	f.photos = append(f.photos, saved)
	return saved, nil
}

func (f *fakePhotoRepo) FindByLocationID(_ context.Context, locationID int64) ([]*photoDomain.Photo, error) {
	var out []*photoDomain.Photo
	for _, p := range f.photos {
		if p.LocationID() == locationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestAttachPhoto(t *testing.T) {
	locations := newFakeLocationRepo()
	photos := &fakePhotoRepo{}
	pub := &fakePublisher{}
	locSvc := NewLocationService(locations, pub, zap.NewNop())
	photoSvc := NewPhotoService(photos, locations, pub, zap.NewNop())
	ctx := context.Background()

	created, err := locSvc.CreateLocation(ctx, createReq("With Photos", 1, 1))
	require.NoError(t, err)

	attached, err := photoSvc.AttachPhoto(ctx, created.ID, AttachPhotoRequest{Filename: "tower.jpg"})
	require.NoError(t, err)
	require.NotNil(t, attached)
	assert.Equal(t, created.ID, attached.LocationID)
	assert.Equal(t, "tower.jpg", attached.Filename)

	listed, err := photoSvc.ListPhotos(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, attached.ID, listed[0].ID)

	assert.Equal(t, events.PhotoAttached, pub.published[len(pub.published)-1].Type)
}

func TestAttachPhoto_MissingLocation(t *testing.T) {
	photos := &fakePhotoRepo{}
	photoSvc := NewPhotoService(photos, newFakeLocationRepo(), &fakePublisher{}, zap.NewNop())

	attached, err := photoSvc.AttachPhoto(context.Background(), 404, AttachPhotoRequest{Filename: "x.jpg"})
	require.NoError(t, err)
	assert.Nil(t, attached)
	assert.Empty(t, photos.photos)
}
