package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kculture-backend/internal/domains/content"
	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/shared/query"
)

type pair struct {
	contentID int64
	spotID    int64
}

type fakeRepo struct {
	contents map[int64]*content.Content
	links    []pair
	nextLink int64

	lastListingType string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contents: map[int64]*content.Content{}}
}

func (f *fakeRepo) List(_ context.Context, _ query.ListParams) ([]*content.Content, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64, incrementView bool) (*content.Content, error) {
	c, ok := f.contents[id]
	if !ok {
		return nil, nil
	}
	if incrementView {
		c.ViewCount++
	}
	return c, nil
}

func (f *fakeRepo) Featured(_ context.Context, _ int, contentType string) ([]*content.Content, error) {
	f.lastListingType = contentType
	return nil, nil
}

func (f *fakeRepo) Popular(_ context.Context, _ int, contentType string) ([]*content.Content, error) {
	f.lastListingType = contentType
	return nil, nil
}

func (f *fakeRepo) Recent(_ context.Context, _ int, contentType string) ([]*content.Content, error) {
	f.lastListingType = contentType
	return nil, nil
}
func (f *fakeRepo) Search(_ context.Context, _ string, _ int) ([]*content.Content, error) {
	return nil, nil
}

func (f *fakeRepo) Create(_ context.Context, req *content.CreateContentRequest) (*content.Content, error) {
	c := &content.Content{
		ID:          int64(len(f.contents) + 1),
		Title:       req.Title,
		ContentType: content.ContentType(req.ContentType),
	}
	f.contents[c.ID] = c
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, req *content.UpdateContentRequest) (*content.Content, error) {
	c, ok := f.contents[id]
	if !ok {
		return nil, nil
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	return c, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.contents[id]; !ok {
		return false, nil
	}
	delete(f.contents, id)
	return true, nil
}

func (f *fakeRepo) LinkSpot(_ context.Context, contentID int64, req *content.LinkSpotRequest) (*content.SpotContent, error) {
	f.nextLink++
	f.links = append(f.links, pair{contentID: contentID, spotID: req.SpotID})
	return &content.SpotContent{ID: f.nextLink, ContentID: contentID, SpotID: req.SpotID}, nil
}

func (f *fakeRepo) UnlinkSpot(_ context.Context, contentID, spotID int64) (bool, error) {
	kept := f.links[:0]
	removed := false
	for _, p := range f.links {
		if p.contentID == contentID && p.spotID == spotID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	f.links = kept
	return removed, nil
}

func (f *fakeRepo) GetSpots(_ context.Context, contentID int64) ([]*spot.Spot, error) {
	spots := make([]*spot.Spot, 0)
	for _, p := range f.links {
		if p.contentID == contentID {
			spots = append(spots, &spot.Spot{ID: p.spotID})
		}
	}
	return spots, nil
}

func TestUnlinkSpot(t *testing.T) {
	repo := newFakeRepo()
	repo.contents[1] = &content.Content{ID: 1, Title: "Goblin", ContentType: content.TypeDrama}
	svc := NewContentService(repo)

	_, err := svc.LinkSpot(context.Background(), 1, &content.LinkSpotRequest{SpotID: 7})
	require.NoError(t, err)

	// first unlink succeeds, second reports not-found rather than silently
	// succeeding
	require.NoError(t, svc.UnlinkSpot(context.Background(), 1, 7))
	assert.ErrorIs(t, svc.UnlinkSpot(context.Background(), 1, 7), content.ErrLinkNotFound)
}

func TestLinkSpot(t *testing.T) {
	repo := newFakeRepo()
	repo.contents[1] = &content.Content{ID: 1, Title: "Goblin", ContentType: content.TypeDrama}
	svc := NewContentService(repo)

	t.Run("unknown content is rejected before linking", func(t *testing.T) {
		_, err := svc.LinkSpot(context.Background(), 99, &content.LinkSpotRequest{SpotID: 7})
		assert.ErrorIs(t, err, content.ErrContentNotFound)
		assert.Empty(t, repo.links)
	})

	t.Run("duplicate pairs are allowed", func(t *testing.T) {
		_, err := svc.LinkSpot(context.Background(), 1, &content.LinkSpotRequest{SpotID: 7})
		require.NoError(t, err)
		_, err = svc.LinkSpot(context.Background(), 1, &content.LinkSpotRequest{SpotID: 7})
		require.NoError(t, err)

		spots, err := svc.GetSpots(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, spots, 2)
	})
}

func TestGetContent(t *testing.T) {
	repo := newFakeRepo()
	repo.contents[1] = &content.Content{ID: 1, Title: "Goblin", ContentType: content.TypeDrama}
	svc := NewContentService(repo)

	c, err := svc.GetContent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ViewCount)

	_, err = svc.GetContent(context.Background(), 2)
	assert.ErrorIs(t, err, content.ErrContentNotFound)
}

func TestContentValidation(t *testing.T) {
	svc := NewContentService(newFakeRepo())

	_, err := svc.Create(context.Background(), &content.CreateContentRequest{
		Title:       "Parasite",
		ContentType: "documentary",
	})
	assert.Error(t, err)
}

func TestListingContentTypeFilter(t *testing.T) {
	repo := newFakeRepo()
	svc := NewContentService(repo)

	t.Run("content type threads through each listing", func(t *testing.T) {
		_, err := svc.Featured(context.Background(), 10, "drama")
		require.NoError(t, err)
		assert.Equal(t, "drama", repo.lastListingType)

		_, err = svc.Popular(context.Background(), 10, "movie")
		require.NoError(t, err)
		assert.Equal(t, "movie", repo.lastListingType)

		_, err = svc.Recent(context.Background(), 10, "music")
		require.NoError(t, err)
		assert.Equal(t, "music", repo.lastListingType)
	})

	t.Run("empty type means all types", func(t *testing.T) {
		_, err := svc.Featured(context.Background(), 10, "")
		require.NoError(t, err)
		assert.Empty(t, repo.lastListingType)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := svc.Popular(context.Background(), 10, "documentary")
		assert.ErrorIs(t, err, content.ErrInvalidContentType)
	})
}
