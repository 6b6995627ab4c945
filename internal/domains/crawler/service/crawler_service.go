package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"kculture-backend/internal/domains/crawler"
	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/infrastructure/scraper"
	"kculture-backend/internal/infrastructure/tourapi"
	"kculture-backend/pkg/cache"
)

const (
	statusKeyPrefix = "crawler:status:"
	searchBatchSize = 20
	statusRetention = 7 * 24 * time.Hour
)

// TourClient is the slice of the tour API the crawler needs.
type TourClient interface {
	SearchKeyword(ctx context.Context, keyword string, numOfRows int) ([]tourapi.Item, error)
	DetailCommon(ctx context.Context, contentID string) (*tourapi.Item, error)
}

// SpotCatalog is the slice of the spot service the crawler needs.
type SpotCatalog interface {
	GetByContentID(ctx context.Context, contentID string) (*spot.Spot, error)
	Search(ctx context.Context, q string, limit int) ([]*spot.Spot, error)
	Create(ctx context.Context, req *spot.CreateSpotRequest) (*spot.Spot, error)
}

// PlaceScraper supplements the tour API with scraped candidates.
type PlaceScraper interface {
	SearchVisitKorea(ctx context.Context, keyword string) ([]scraper.ScrapedSpot, error)
}

// CrawlerService ingests spots from the tour API and the web scraper.
// Individual item failures are logged and skipped; a run only errors when
// the context is cancelled.
type CrawlerService struct {
	tour       TourClient
	spots      SpotCatalog
	scraper    PlaceScraper
	cache      cache.Cache
	batchDelay time.Duration
}

func NewCrawlerService(tour TourClient, spots SpotCatalog, sc PlaceScraper, c cache.Cache, batchDelay time.Duration) *CrawlerService {
	return &CrawlerService{
		tour:       tour,
		spots:      spots,
		scraper:    sc,
		cache:      c,
		batchDelay: batchDelay,
	}
}

// CrawlDrama ingests drama filming locations. An empty keyword list falls
// back to the predefined seeds.
func (s *CrawlerService) CrawlDrama(ctx context.Context, keywords []string) (*crawler.Result, error) {
	if len(keywords) == 0 {
		keywords = crawler.DramaKeywords
	}
	return s.crawl(ctx, crawler.KindDrama, spot.CategoryDrama, keywords)
}

// CrawlKpop ingests k-pop landmarks.
func (s *CrawlerService) CrawlKpop(ctx context.Context, keywords []string) (*crawler.Result, error) {
	if len(keywords) == 0 {
		keywords = crawler.KpopKeywords
	}
	return s.crawl(ctx, crawler.KindKpop, spot.CategoryKpop, keywords)
}

// Status reports the last run outcome per crawl kind. Kinds that never ran
// are omitted.
func (s *CrawlerService) Status(ctx context.Context) (map[string]*crawler.RunStatus, error) {
	statuses := make(map[string]*crawler.RunStatus)
	for _, kind := range []crawler.Kind{crawler.KindDrama, crawler.KindKpop} {
		var st crawler.RunStatus
		found, err := s.cache.Get(ctx, statusKeyPrefix+kind.String(), &st)
		if err != nil {
			return nil, fmt.Errorf("read crawl status: %w", err)
		}
		if found {
			statuses[kind.String()] = &st
		}
	}
	return statuses, nil
}

func (s *CrawlerService) crawl(ctx context.Context, kind crawler.Kind, category spot.Category, keywords []string) (*crawler.Result, error) {
	started := time.Now().UTC()
	result := &crawler.Result{Keywords: len(keywords)}

	log.Info().Str("kind", kind.String()).Int("keywords", len(keywords)).Msg("crawl started")

	for i, keyword := range keywords {
		if i > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.batchDelay):
			}
		}

		if err := s.crawlKeyword(ctx, keyword, category, result); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			log.Warn().Err(err).Str("keyword", keyword).Msg("keyword batch failed, continuing")
		}
	}

	s.recordRun(ctx, kind, started, result)

	log.Info().
		Str("kind", kind.String()).
		Int("found", result.Found).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("crawl finished")

	return result, nil
}

func (s *CrawlerService) crawlKeyword(ctx context.Context, keyword string, category spot.Category, result *crawler.Result) error {
	items, err := s.tour.SearchKeyword(ctx, keyword, searchBatchSize)
	if err != nil {
		return err
	}
	result.Found += len(items)

	for i := range items {
		item := &items[i]
		switch s.ingestItem(ctx, item, category, keyword) {
		case ingestCreated:
			result.Created++
		case ingestSkipped:
			result.Skipped++
		case ingestFailed:
			result.Failed++
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	// the tour API misses newer filming locations; fall back to the web
	if len(items) == 0 && s.scraper != nil {
		s.ingestScraped(ctx, keyword, category, result)
	}

	return nil
}

type ingestOutcome int

const (
	ingestCreated ingestOutcome = iota
	ingestSkipped
	ingestFailed
)

func (s *CrawlerService) ingestItem(ctx context.Context, item *tourapi.Item, category spot.Category, keyword string) ingestOutcome {
	if item.ContentID == "" || item.Title == "" {
		return ingestSkipped
	}

	existing, err := s.spots.GetByContentID(ctx, item.ContentID)
	if err != nil {
		log.Warn().Err(err).Str("content_id", item.ContentID).Msg("dedup lookup failed")
		return ingestFailed
	}
	if existing != nil {
		return ingestSkipped
	}

	// the search listing has no overview; fetch it separately
	if item.Overview == "" {
		detail, err := s.tour.DetailCommon(ctx, item.ContentID)
		if err != nil {
			log.Warn().Err(err).Str("content_id", item.ContentID).Msg("detail fetch failed, saving without overview")
		} else if detail != nil {
			item.Overview = detail.Overview
			if item.Homepage == "" {
				item.Homepage = detail.Homepage
			}
		}
	}

	req := tourapi.ToSpotRequest(item, category, []string{category.String(), keyword})

	if _, err := s.spots.Create(ctx, req); err != nil {
		if errors.Is(err, spot.ErrDuplicateContentID) {
			// raced with another run; harmless
			return ingestSkipped
		}
		log.Warn().Err(err).Str("title", item.Title).Msg("spot ingest failed")
		return ingestFailed
	}

	return ingestCreated
}

// ingestScraped saves web results for keywords the tour API knows nothing
// about. Scraped spots have no external id, so dedup falls back to an exact
// name match against the catalog.
func (s *CrawlerService) ingestScraped(ctx context.Context, keyword string, category spot.Category, result *crawler.Result) {
	scraped, err := s.scraper.SearchVisitKorea(ctx, keyword)
	if err != nil {
		log.Debug().Err(err).Str("keyword", keyword).Msg("scrape fallback failed")
		return
	}
	result.Found += len(scraped)

	for _, sp := range scraped {
		if s.nameExists(ctx, sp.Name) {
			result.Skipped++
			continue
		}

		req := &spot.CreateSpotRequest{
			Name:     sp.Name,
			Category: category.String(),
			Tags:     []string{category.String(), keyword},
		}
		if sp.Address != "" {
			addr := sp.Address
			req.Address = &addr
		}
		if sp.Description != "" {
			desc := sp.Description
			req.Description = &desc
		}

		if _, err := s.spots.Create(ctx, req); err != nil {
			log.Warn().Err(err).Str("name", sp.Name).Msg("scraped spot ingest failed")
			result.Failed++
			continue
		}
		result.Created++
	}
}

func (s *CrawlerService) nameExists(ctx context.Context, name string) bool {
	matches, err := s.spots.Search(ctx, name, 5)
	if err != nil {
		return false
	}
	for _, m := range matches {
		if m.Name == name {
			return true
		}
	}
	return false
}

func (s *CrawlerService) recordRun(ctx context.Context, kind crawler.Kind, started time.Time, result *crawler.Result) {
	status := &crawler.RunStatus{
		Kind:       kind,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Result:     *result,
	}
	if err := s.cache.Set(ctx, statusKeyPrefix+kind.String(), status, statusRetention); err != nil {
		log.Warn().Err(err).Str("kind", kind.String()).Msg("failed to record crawl status")
	}
}
