package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/shared/query"
	"kculture-backend/pkg/cache"
)

// Repository is the persistence contract the service depends on.
type Repository interface {
	List(ctx context.Context, p query.ListParams) ([]*spot.Spot, int, error)
	GetByID(ctx context.Context, id int64, incrementView bool) (*spot.Spot, error)
	Featured(ctx context.Context, limit int, filters map[string]interface{}) ([]*spot.Spot, error)
	Popular(ctx context.Context, limit int) ([]*spot.Spot, error)
	Search(ctx context.Context, q string, limit int) ([]*spot.Spot, error)
	Count(ctx context.Context, filters map[string]interface{}) (int, error)
	GetByContentID(ctx context.Context, contentID string) (*spot.Spot, error)
	Create(ctx context.Context, req *spot.CreateSpotRequest) (*spot.Spot, error)
	Update(ctx context.Context, id int64, req *spot.UpdateSpotRequest) (*spot.Spot, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

const (
	featuredCacheTTL    = 5 * time.Minute
	spotCachePattern    = "spots:*"
	defaultListingLimit = 10
)

// SpotService owns spot business rules. Featured and popular listings are
// cached in redis for a short TTL since they back the landing page.
type SpotService struct {
	repo  Repository
	cache cache.Cache
}

func NewSpotService(repo Repository, c cache.Cache) *SpotService {
	return &SpotService{repo: repo, cache: c}
}

// List returns one page of spots, optionally constrained to a category and a
// free-text query.
func (s *SpotService) List(ctx context.Context, req *spot.ListSpotsRequest) ([]*spot.Spot, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	filters := map[string]interface{}{}
	if req.Category != "" {
		filters["category"] = req.Category
	}

	return s.repo.List(ctx, query.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Query:    req.Query,
		Filters:  filters,
	})
}

// GetSpot fetches one spot and counts the view.
func (s *SpotService) GetSpot(ctx context.Context, id int64) (*spot.Spot, error) {
	found, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, spot.ErrSpotNotFound
	}
	return found, nil
}

// Featured returns the top spots by view count, optionally per category.
func (s *SpotService) Featured(ctx context.Context, limit int, category string) ([]*spot.Spot, error) {
	if limit <= 0 {
		limit = defaultListingLimit
	}
	if category != "" && !spot.Category(category).IsValid() {
		return nil, spot.ErrInvalidCategory
	}

	key := fmt.Sprintf("spots:featured:%d:%s", limit, category)
	var cached []*spot.Spot
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, serving from database")
	}

	filters := map[string]interface{}{}
	if category != "" {
		filters["category"] = category
	}

	spots, err := s.repo.Featured(ctx, limit, filters)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, spots, featuredCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return spots, nil
}

// Popular is the same listing as Featured without a category constraint.
func (s *SpotService) Popular(ctx context.Context, limit int) ([]*spot.Spot, error) {
	return s.Featured(ctx, limit, "")
}

// Search returns the first page of matches for a free-text query.
func (s *SpotService) Search(ctx context.Context, q string, limit int) ([]*spot.Spot, error) {
	if limit <= 0 {
		limit = defaultListingLimit
	}
	return s.repo.Search(ctx, q, limit)
}

// GetByContentID is the crawler's dedup lookup; nil means not ingested.
func (s *SpotService) GetByContentID(ctx context.Context, contentID string) (*spot.Spot, error) {
	return s.repo.GetByContentID(ctx, contentID)
}

// Create persists a spot with its embedded related contents.
func (s *SpotService) Create(ctx context.Context, req *spot.CreateSpotRequest) (*spot.Spot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		if query.IsUniqueViolation(err) {
			return nil, spot.ErrDuplicateContentID
		}
		return nil, err
	}

	s.invalidateListings(ctx)
	return created, nil
}

// Update applies a partial update.
func (s *SpotService) Update(ctx context.Context, id int64, req *spot.UpdateSpotRequest) (*spot.Spot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if query.IsUniqueViolation(err) {
			return nil, spot.ErrDuplicateContentID
		}
		return nil, err
	}
	if updated == nil {
		return nil, spot.ErrSpotNotFound
	}

	s.invalidateListings(ctx)
	return updated, nil
}

// Delete removes a spot and its children.
func (s *SpotService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return spot.ErrSpotNotFound
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *SpotService) invalidateListings(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, spotCachePattern); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate spot listing cache")
	}
}
