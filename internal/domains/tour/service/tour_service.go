package service

import (
	"context"

	"kculture-backend/internal/domains/tour"
	"kculture-backend/internal/shared/query"
)

// Repository is the persistence contract the service depends on.
type Repository interface {
	List(ctx context.Context, p query.ListParams) ([]*tour.Tour, int, error)
	GetByID(ctx context.Context, id int64, incrementView bool) (*tour.Tour, error)
	Featured(ctx context.Context, limit int) ([]*tour.Tour, error)
	Popular(ctx context.Context, limit int) ([]*tour.Tour, error)
	Search(ctx context.Context, q string, limit int) ([]*tour.Tour, error)
	Create(ctx context.Context, req *tour.CreateTourRequest) (*tour.Tour, error)
	Update(ctx context.Context, id int64, req *tour.UpdateTourRequest) (*tour.Tour, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetTourSpots(ctx context.Context, tourID int64) ([]*tour.TourSpot, error)
	AddSpot(ctx context.Context, tourID int64, req *tour.CreateTourSpotRequest) (*tour.TourSpot, error)
	RemoveSpot(ctx context.Context, tourID, spotID int64) (bool, error)
	Reorder(ctx context.Context, tourID int64, pairs []tour.ReorderPair) (int, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

const defaultListingLimit = 10

// TourService owns tour business rules and the itinerary operations.
type TourService struct {
	repo Repository
}

func NewTourService(repo Repository) *TourService {
	return &TourService{repo: repo}
}

func (s *TourService) List(ctx context.Context, req *tour.ListToursRequest) ([]*tour.Tour, int, error) {
	filters := map[string]interface{}{}
	if req.Featured != nil {
		filters["is_featured"] = *req.Featured
	}

	return s.repo.List(ctx, query.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Query:    req.Query,
		Filters:  filters,
	})
}

// GetTour fetches one tour with its ordered stops and counts the view.
func (s *TourService) GetTour(ctx context.Context, id int64) (*tour.Tour, error) {
	found, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, tour.ErrTourNotFound
	}
	return found, nil
}

func (s *TourService) Featured(ctx context.Context, limit int) ([]*tour.Tour, error) {
	return s.repo.Featured(ctx, normalizeLimit(limit))
}

func (s *TourService) Popular(ctx context.Context, limit int) ([]*tour.Tour, error) {
	return s.repo.Popular(ctx, normalizeLimit(limit))
}

func (s *TourService) Search(ctx context.Context, q string, limit int) ([]*tour.Tour, error) {
	return s.repo.Search(ctx, q, normalizeLimit(limit))
}

// Create persists the tour and its stops atomically.
func (s *TourService) Create(ctx context.Context, req *tour.CreateTourRequest) (*tour.Tour, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		if query.IsForeignKeyViolation(err) {
			return nil, tour.ErrSpotNotFound
		}
		return nil, err
	}
	return created, nil
}

func (s *TourService) Update(ctx context.Context, id int64, req *tour.UpdateTourRequest) (*tour.Tour, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, tour.ErrTourNotFound
	}
	return updated, nil
}

func (s *TourService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return tour.ErrTourNotFound
	}
	return nil
}

// GetTourSpots returns the stops of a tour, sorted by order.
func (s *TourService) GetTourSpots(ctx context.Context, tourID int64) ([]*tour.TourSpot, error) {
	exists, err := s.repo.Exists(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, tour.ErrTourNotFound
	}
	return s.repo.GetTourSpots(ctx, tourID)
}

// AddSpot appends one stop to a tour.
func (s *TourService) AddSpot(ctx context.Context, tourID int64, req *tour.CreateTourSpotRequest) (*tour.TourSpot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, tour.ErrTourNotFound
	}

	stop, err := s.repo.AddSpot(ctx, tourID, req)
	if err != nil {
		if query.IsForeignKeyViolation(err) {
			return nil, tour.ErrSpotNotFound
		}
		return nil, err
	}
	return stop, nil
}

// RemoveSpot deletes one stop.
func (s *TourService) RemoveSpot(ctx context.Context, tourID, spotID int64) error {
	removed, err := s.repo.RemoveSpot(ctx, tourID, spotID)
	if err != nil {
		return err
	}
	if !removed {
		return tour.ErrTourSpotNotFound
	}
	return nil
}

// Reorder bulk-updates stop positions. Pairs referencing spots not in the
// tour are skipped; the updated count reports the partial success.
func (s *TourService) Reorder(ctx context.Context, tourID int64, req *tour.ReorderRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	exists, err := s.repo.Exists(ctx, tourID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, tour.ErrTourNotFound
	}

	return s.repo.Reorder(ctx, tourID, req.Orders)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListingLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}
