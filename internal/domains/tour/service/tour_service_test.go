package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kculture-backend/internal/domains/tour"
	"kculture-backend/internal/shared/query"
)

type fakeRepo struct {
	tours    map[int64]*tour.Tour
	stops    []*tour.TourSpot
	nextStop int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tours: map[int64]*tour.Tour{}}
}

func (f *fakeRepo) List(_ context.Context, _ query.ListParams) ([]*tour.Tour, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64, incrementView bool) (*tour.Tour, error) {
	t, ok := f.tours[id]
	if !ok {
		return nil, nil
	}
	if incrementView {
		t.ViewCount++
	}
	return t, nil
}

func (f *fakeRepo) Featured(_ context.Context, _ int) ([]*tour.Tour, error) { return nil, nil }
func (f *fakeRepo) Popular(_ context.Context, _ int) ([]*tour.Tour, error)  { return nil, nil }
func (f *fakeRepo) Search(_ context.Context, _ string, _ int) ([]*tour.Tour, error) {
	return nil, nil
}

func (f *fakeRepo) Create(_ context.Context, req *tour.CreateTourRequest) (*tour.Tour, error) {
	t := &tour.Tour{ID: int64(len(f.tours) + 1), Title: req.Title}
	f.tours[t.ID] = t
	for i := range req.TourSpots {
		stop, _ := f.AddSpot(context.Background(), t.ID, &req.TourSpots[i])
		t.TourSpots = append(t.TourSpots, stop)
	}
	return t, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, _ *tour.UpdateTourRequest) (*tour.Tour, error) {
	t, ok := f.tours[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.tours[id]; !ok {
		return false, nil
	}
	delete(f.tours, id)
	return true, nil
}

func (f *fakeRepo) GetTourSpots(_ context.Context, tourID int64) ([]*tour.TourSpot, error) {
	stops := make([]*tour.TourSpot, 0)
	for _, s := range f.stops {
		if s.TourID == tourID {
			stops = append(stops, s)
		}
	}
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].Order != stops[j].Order {
			return stops[i].Order < stops[j].Order
		}
		return stops[i].ID < stops[j].ID
	})
	return stops, nil
}

func (f *fakeRepo) AddSpot(_ context.Context, tourID int64, req *tour.CreateTourSpotRequest) (*tour.TourSpot, error) {
	f.nextStop++
	stop := &tour.TourSpot{ID: f.nextStop, TourID: tourID, SpotID: req.SpotID, Order: req.Order}
	f.stops = append(f.stops, stop)
	return stop, nil
}

func (f *fakeRepo) RemoveSpot(_ context.Context, tourID, spotID int64) (bool, error) {
	kept := f.stops[:0]
	removed := false
	for _, s := range f.stops {
		if s.TourID == tourID && s.SpotID == spotID {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	f.stops = kept
	return removed, nil
}

func (f *fakeRepo) Reorder(_ context.Context, tourID int64, pairs []tour.ReorderPair) (int, error) {
	updated := 0
	for _, p := range pairs {
		for _, s := range f.stops {
			if s.TourID == tourID && s.SpotID == p.SpotID {
				s.Order = p.Order
				updated++
			}
		}
	}
	return updated, nil
}

func (f *fakeRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.tours[id]
	return ok, nil
}

func createThreeStopTour(t *testing.T, svc *TourService) *tour.Tour {
	t.Helper()
	created, err := svc.Create(context.Background(), &tour.CreateTourRequest{
		Title: "Goblin Filming Tour",
		TourSpots: []tour.CreateTourSpotRequest{
			{SpotID: 101, Order: 1},
			{SpotID: 102, Order: 2},
			{SpotID: 103, Order: 3},
		},
	})
	require.NoError(t, err)
	return created
}

func TestReorder(t *testing.T) {
	t.Run("moved spot sorts by its new non-contiguous order", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewTourService(repo)
		created := createThreeStopTour(t, svc)

		updated, err := svc.Reorder(context.Background(), created.ID, &tour.ReorderRequest{
			Orders: []tour.ReorderPair{{SpotID: 102, Order: 5}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		stops, err := svc.GetTourSpots(context.Background(), created.ID)
		require.NoError(t, err)
		require.Len(t, stops, 3)
		assert.Equal(t, int64(101), stops[0].SpotID)
		assert.Equal(t, int64(103), stops[1].SpotID)
		assert.Equal(t, int64(102), stops[2].SpotID)
		assert.Equal(t, 5, stops[2].Order)
	})

	t.Run("unknown pairs are skipped, not failed", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewTourService(repo)
		created := createThreeStopTour(t, svc)

		updated, err := svc.Reorder(context.Background(), created.ID, &tour.ReorderRequest{
			Orders: []tour.ReorderPair{
				{SpotID: 101, Order: 9},
				{SpotID: 999, Order: 1},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated)
	})

	t.Run("duplicate order values are permitted", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewTourService(repo)
		created := createThreeStopTour(t, svc)

		_, err := svc.Reorder(context.Background(), created.ID, &tour.ReorderRequest{
			Orders: []tour.ReorderPair{{SpotID: 103, Order: 1}},
		})
		require.NoError(t, err)

		stops, err := svc.GetTourSpots(context.Background(), created.ID)
		require.NoError(t, err)
		// order 1 now appears twice; id breaks the tie deterministically
		assert.Equal(t, int64(101), stops[0].SpotID)
		assert.Equal(t, int64(103), stops[1].SpotID)
	})

	t.Run("unknown tour is an error", func(t *testing.T) {
		svc := NewTourService(newFakeRepo())
		_, err := svc.Reorder(context.Background(), 42, &tour.ReorderRequest{
			Orders: []tour.ReorderPair{{SpotID: 1, Order: 1}},
		})
		assert.ErrorIs(t, err, tour.ErrTourNotFound)
	})
}

func TestRemoveSpot(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTourService(repo)
	created := createThreeStopTour(t, svc)

	require.NoError(t, svc.RemoveSpot(context.Background(), created.ID, 102))
	assert.ErrorIs(t, svc.RemoveSpot(context.Background(), created.ID, 102), tour.ErrTourSpotNotFound)

	stops, err := svc.GetTourSpots(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, stops, 2)
}

func TestGetTour(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTourService(repo)
	created := createThreeStopTour(t, svc)

	got, err := svc.GetTour(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	_, err = svc.GetTour(context.Background(), 999)
	assert.ErrorIs(t, err, tour.ErrTourNotFound)
}
