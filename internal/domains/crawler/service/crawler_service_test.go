package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kculture-backend/internal/domains/crawler"
	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/infrastructure/scraper"
	"kculture-backend/internal/infrastructure/tourapi"
)

type fakeTour struct {
	results     map[string][]tourapi.Item
	details     map[string]*tourapi.Item
	searchErr   map[string]error
	detailCalls int
}

func newFakeTour() *fakeTour {
	return &fakeTour{
		results:   map[string][]tourapi.Item{},
		details:   map[string]*tourapi.Item{},
		searchErr: map[string]error{},
	}
}

func (f *fakeTour) SearchKeyword(_ context.Context, keyword string, _ int) ([]tourapi.Item, error) {
	if err := f.searchErr[keyword]; err != nil {
		return nil, err
	}
	return f.results[keyword], nil
}

func (f *fakeTour) DetailCommon(_ context.Context, contentID string) (*tourapi.Item, error) {
	f.detailCalls++
	return f.details[contentID], nil
}

type fakeCatalog struct {
	existing map[string]*spot.Spot
	created  []*spot.CreateSpotRequest
	failFor  map[string]error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		existing: map[string]*spot.Spot{},
		failFor:  map[string]error{},
	}
}

func (f *fakeCatalog) GetByContentID(_ context.Context, contentID string) (*spot.Spot, error) {
	return f.existing[contentID], nil
}

func (f *fakeCatalog) Search(_ context.Context, q string, _ int) ([]*spot.Spot, error) {
	var out []*spot.Spot
	for _, s := range f.existing {
		if s.Name == q {
			out = append(out, s)
		}
	}
	for _, req := range f.created {
		if req.Name == q {
			out = append(out, &spot.Spot{Name: req.Name})
		}
	}
	return out, nil
}

func (f *fakeCatalog) Create(_ context.Context, req *spot.CreateSpotRequest) (*spot.Spot, error) {
	if req.ContentID != nil {
		if err := f.failFor[*req.ContentID]; err != nil {
			return nil, err
		}
	}
	f.created = append(f.created, req)
	s := &spot.Spot{ID: int64(len(f.created)), Name: req.Name}
	if req.ContentID != nil {
		f.existing[*req.ContentID] = s
	}
	return s, nil
}

// memoryCache is a map-backed cache.Cache for tests.
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, _ string) error {
	m.data = map[string][]byte{}
	return nil
}

func (m *memoryCache) Ping(_ context.Context) error { return nil }

func newService(tour *fakeTour, catalog *fakeCatalog) *CrawlerService {
	return NewCrawlerService(tour, catalog, nil, newMemoryCache(), 0)
}

func TestCrawlDrama(t *testing.T) {
	tour := newFakeTour()
	tour.results["드라마 촬영지"] = []tourapi.Item{
		{ContentID: "100", Title: "Namsan Tower", MapX: "126.98", MapY: "37.55"},
		{ContentID: "200", Title: "Petite France"},
	}
	tour.details["100"] = &tourapi.Item{ContentID: "100", Overview: "Seen in many dramas."}

	catalog := newFakeCatalog()
	svc := newService(tour, catalog)

	result, err := svc.CrawlDrama(context.Background(), []string{"드라마 촬영지"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Keywords)
	assert.Equal(t, 2, result.Found)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, catalog.created, 2)
	first := catalog.created[0]
	assert.Equal(t, "Namsan Tower", first.Name)
	assert.Equal(t, "drama", first.Category)
	require.NotNil(t, first.Description, "overview comes from the detail call")
	assert.Equal(t, "Seen in many dramas.", *first.Description)
	assert.Contains(t, first.Tags, "drama")
	assert.Contains(t, first.Tags, "드라마 촬영지")
}

func TestCrawlSkipsExistingContentIDs(t *testing.T) {
	tour := newFakeTour()
	tour.results["도깨비 촬영지"] = []tourapi.Item{
		{ContentID: "100", Title: "Already There"},
		{ContentID: "200", Title: "Brand New"},
	}

	catalog := newFakeCatalog()
	catalog.existing["100"] = &spot.Spot{ID: 1, Name: "Already There"}
	svc := newService(tour, catalog)

	result, err := svc.CrawlDrama(context.Background(), []string{"도깨비 촬영지"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, catalog.created, 1)
	assert.Equal(t, "Brand New", catalog.created[0].Name)
	assert.Equal(t, 1, tour.detailCalls, "no detail fetch for deduped items")
}

func TestCrawlContinuesPastFailures(t *testing.T) {
	tour := newFakeTour()
	tour.results["a"] = []tourapi.Item{{ContentID: "1", Title: "Fails"}}
	tour.results["b"] = []tourapi.Item{{ContentID: "2", Title: "Works"}}
	tour.searchErr["broken"] = errors.New("upstream down")

	catalog := newFakeCatalog()
	catalog.failFor["1"] = errors.New("insert failed")
	svc := newService(tour, catalog)

	result, err := svc.CrawlKpop(context.Background(), []string{"a", "broken", "b"})
	require.NoError(t, err, "per-keyword failures do not abort the run")

	assert.Equal(t, 3, result.Keywords)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Created)
	require.Len(t, catalog.created, 1)
	assert.Equal(t, "kpop", catalog.created[0].Category)
}

func TestCrawlTreatsDuplicateRaceAsSkip(t *testing.T) {
	tour := newFakeTour()
	tour.results["x"] = []tourapi.Item{{ContentID: "7", Title: "Raced"}}

	catalog := newFakeCatalog()
	catalog.failFor["7"] = spot.ErrDuplicateContentID
	svc := newService(tour, catalog)

	result, err := svc.CrawlDrama(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
}

func TestCrawlIgnoresItemsWithoutIDOrTitle(t *testing.T) {
	tour := newFakeTour()
	tour.results["x"] = []tourapi.Item{
		{ContentID: "", Title: "No ID"},
		{ContentID: "9", Title: ""},
		{ContentID: "10", Title: "Keeper"},
	}

	catalog := newFakeCatalog()
	svc := newService(tour, catalog)

	result, err := svc.CrawlDrama(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Found)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1, result.Created)
}

func TestStatusRoundTrip(t *testing.T) {
	tour := newFakeTour()
	tour.results["x"] = []tourapi.Item{{ContentID: "1", Title: "One"}}

	svc := newService(tour, newFakeCatalog())

	statuses, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, statuses, "no runs recorded yet")

	_, err = svc.CrawlDrama(context.Background(), []string{"x"})
	require.NoError(t, err)

	statuses, err = svc.Status(context.Background())
	require.NoError(t, err)
	require.Contains(t, statuses, "drama")
	st := statuses["drama"]
	assert.Equal(t, crawler.KindDrama, st.Kind)
	assert.Equal(t, 1, st.Result.Created)
	assert.False(t, st.FinishedAt.Before(st.StartedAt))
}

type fakeScraper struct {
	results map[string][]scraper.ScrapedSpot
	calls   int
}

func (f *fakeScraper) SearchVisitKorea(_ context.Context, keyword string) ([]scraper.ScrapedSpot, error) {
	f.calls++
	return f.results[keyword], nil
}

func TestScrapeFallback(t *testing.T) {
	tour := newFakeTour() // no tour API results at all
	sc := &fakeScraper{results: map[string][]scraper.ScrapedSpot{
		"무명 드라마 촬영지": {
			{Name: "Hidden Alley", Address: "Mapo-gu, Seoul", Source: "visitkorea"},
			{Name: "Old Bridge", Source: "visitkorea"},
		},
	}}

	catalog := newFakeCatalog()
	svc := NewCrawlerService(tour, catalog, sc, newMemoryCache(), 0)

	result, err := svc.CrawlDrama(context.Background(), []string{"무명 드라마 촬영지"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Found)
	assert.Equal(t, 2, result.Created)
	require.Len(t, catalog.created, 2)
	assert.Equal(t, "Hidden Alley", catalog.created[0].Name)
	require.NotNil(t, catalog.created[0].Address)
	assert.Equal(t, "Mapo-gu, Seoul", *catalog.created[0].Address)
	assert.Nil(t, catalog.created[0].ContentID)

	t.Run("second run dedups by name", func(t *testing.T) {
		result, err := svc.CrawlDrama(context.Background(), []string{"무명 드라마 촬영지"})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Equal(t, 2, result.Skipped)
	})

	t.Run("scraper stays idle when the tour API has results", func(t *testing.T) {
		tour.results["유명 촬영지"] = []tourapi.Item{{ContentID: "50", Title: "Famous"}}
		before := sc.calls

		_, err := svc.CrawlDrama(context.Background(), []string{"유명 촬영지"})
		require.NoError(t, err)
		assert.Equal(t, before, sc.calls)
	})
}

func TestCrawlStopsOnCancelledContext(t *testing.T) {
	tour := newFakeTour()
	tour.results["a"] = []tourapi.Item{{ContentID: "1", Title: "One"}}
	tour.results["b"] = []tourapi.Item{{ContentID: "2", Title: "Two"}}

	catalog := newFakeCatalog()
	svc := NewCrawlerService(tour, catalog, nil, newMemoryCache(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CrawlDrama(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}
