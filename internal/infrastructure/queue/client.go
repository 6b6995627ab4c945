package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"kculture-backend/internal/config"
	"kculture-backend/internal/domains/crawler"
)

// Client enqueues background jobs. It implements the crawler handler's
// Enqueuer interface.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Host,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// EnqueueCrawl schedules a crawl run and returns the task id.
func (c *Client) EnqueueCrawl(ctx context.Context, kind crawler.Kind, keywords []string) (string, error) {
	task, err := NewCrawlTask(kind, keywords)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueCrawler),
		asynq.MaxRetry(2),
		asynq.Timeout(30*time.Minute),
	)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("task_id", info.ID).
		Str("type", task.Type()).
		Msg("crawl task enqueued")

	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
