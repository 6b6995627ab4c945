package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"kculture-backend/internal/domains/crawler"
	crawlerservice "kculture-backend/internal/domains/crawler/service"
)

// CrawlDramaHandler processes drama crawl tasks.
func CrawlDramaHandler(svc *crawlerservice.CrawlerService) asynq.HandlerFunc {
	return crawlHandler(svc.CrawlDrama)
}

// CrawlKpopHandler processes k-pop crawl tasks.
func CrawlKpopHandler(svc *crawlerservice.CrawlerService) asynq.HandlerFunc {
	return crawlHandler(svc.CrawlKpop)
}

func crawlHandler(run func(context.Context, []string) (*crawler.Result, error)) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p CrawlPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			// malformed payload never improves on retry
			return asynq.SkipRetry
		}

		result, err := run(ctx, p.Keywords)
		if err != nil {
			return err
		}

		log.Info().
			Str("type", t.Type()).
			Int("created", result.Created).
			Int("skipped", result.Skipped).
			Int("failed", result.Failed).
			Msg("crawl task finished")

		return nil
	}
}
