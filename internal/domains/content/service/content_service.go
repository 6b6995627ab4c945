package service

import (
	"context"

	"kculture-backend/internal/domains/content"
	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/shared/query"
)

// Repository is the persistence contract the service depends on.
type Repository interface {
	List(ctx context.Context, p query.ListParams) ([]*content.Content, int, error)
	GetByID(ctx context.Context, id int64, incrementView bool) (*content.Content, error)
	Featured(ctx context.Context, limit int, contentType string) ([]*content.Content, error)
	Popular(ctx context.Context, limit int, contentType string) ([]*content.Content, error)
	Recent(ctx context.Context, limit int, contentType string) ([]*content.Content, error)
	Search(ctx context.Context, q string, limit int) ([]*content.Content, error)
	Create(ctx context.Context, req *content.CreateContentRequest) (*content.Content, error)
	Update(ctx context.Context, id int64, req *content.UpdateContentRequest) (*content.Content, error)
	Delete(ctx context.Context, id int64) (bool, error)
	LinkSpot(ctx context.Context, contentID int64, req *content.LinkSpotRequest) (*content.SpotContent, error)
	UnlinkSpot(ctx context.Context, contentID, spotID int64) (bool, error)
	GetSpots(ctx context.Context, contentID int64) ([]*spot.Spot, error)
}

const defaultListingLimit = 10

// ContentService owns content business rules and the spot-link operations.
type ContentService struct {
	repo Repository
}

func NewContentService(repo Repository) *ContentService {
	return &ContentService{repo: repo}
}

func (s *ContentService) List(ctx context.Context, req *content.ListContentsRequest) ([]*content.Content, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	filters := map[string]interface{}{}
	if req.ContentType != "" {
		filters["content_type"] = req.ContentType
	}
	if req.Year != nil {
		filters["year"] = *req.Year
	}

	return s.repo.List(ctx, query.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Query:    req.Query,
		Filters:  filters,
	})
}

// GetContent fetches one content and counts the view.
func (s *ContentService) GetContent(ctx context.Context, id int64) (*content.Content, error) {
	found, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, content.ErrContentNotFound
	}
	return found, nil
}

// Featured ranks by rating then views, optionally for one content type.
func (s *ContentService) Featured(ctx context.Context, limit int, contentType string) ([]*content.Content, error) {
	if err := validateContentType(contentType); err != nil {
		return nil, err
	}
	return s.repo.Featured(ctx, normalizeLimit(limit), contentType)
}

// Popular ranks purely by views, optionally for one content type.
func (s *ContentService) Popular(ctx context.Context, limit int, contentType string) ([]*content.Content, error) {
	if err := validateContentType(contentType); err != nil {
		return nil, err
	}
	return s.repo.Popular(ctx, normalizeLimit(limit), contentType)
}

// Recent returns the newest titles, optionally for one content type.
func (s *ContentService) Recent(ctx context.Context, limit int, contentType string) ([]*content.Content, error) {
	if err := validateContentType(contentType); err != nil {
		return nil, err
	}
	return s.repo.Recent(ctx, normalizeLimit(limit), contentType)
}

func validateContentType(contentType string) error {
	if contentType != "" && !content.ContentType(contentType).IsValid() {
		return content.ErrInvalidContentType
	}
	return nil
}

func (s *ContentService) Search(ctx context.Context, q string, limit int) ([]*content.Content, error) {
	return s.repo.Search(ctx, q, normalizeLimit(limit))
}

func (s *ContentService) Create(ctx context.Context, req *content.CreateContentRequest) (*content.Content, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *ContentService) Update(ctx context.Context, id int64, req *content.UpdateContentRequest) (*content.Content, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, content.ErrContentNotFound
	}
	return updated, nil
}

func (s *ContentService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return content.ErrContentNotFound
	}
	return nil
}

// LinkSpot attaches a spot to a content with optional scene context.
// Duplicate links are permitted.
func (s *ContentService) LinkSpot(ctx context.Context, contentID int64, req *content.LinkSpotRequest) (*content.SpotContent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Verify the content exists so a bad id reads as content-not-found
	// instead of a bare integrity error.
	existing, err := s.repo.GetByID(ctx, contentID, false)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, content.ErrContentNotFound
	}

	link, err := s.repo.LinkSpot(ctx, contentID, req)
	if err != nil {
		if query.IsForeignKeyViolation(err) {
			return nil, content.ErrSpotNotFound
		}
		return nil, err
	}
	return link, nil
}

// UnlinkSpot removes a link. Unlinking an absent pair is reported as
// not-found, never as silent success: the second unlink of the same pair
// returns ErrLinkNotFound.
func (s *ContentService) UnlinkSpot(ctx context.Context, contentID, spotID int64) error {
	removed, err := s.repo.UnlinkSpot(ctx, contentID, spotID)
	if err != nil {
		return err
	}
	if !removed {
		return content.ErrLinkNotFound
	}
	return nil
}

// GetSpots returns the filming spots linked to a content.
func (s *ContentService) GetSpots(ctx context.Context, contentID int64) ([]*spot.Spot, error) {
	existing, err := s.repo.GetByID(ctx, contentID, false)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, content.ErrContentNotFound
	}
	return s.repo.GetSpots(ctx, contentID)
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
