package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"kculture-backend/internal/infrastructure/queue"
	"kculture-backend/pkg/container"
)

// startWorker runs the asynq server in the background and returns it for
// shutdown.
func startWorker(c *container.Container) *asynq.Server {
	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeCrawlDrama, queue.CrawlDramaHandler(c.CrawlerService))
	mux.Handle(queue.TypeCrawlKpop, queue.CrawlKpopHandler(c.CrawlerService))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			// crawls are long-running and hit external services, so keep
			// concurrency low
			Concurrency: 2,
			Queues: map[string]int{
				queue.QueueCrawler: 5,
				"default":          1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	return srv
}

// startScheduler runs the cron scheduler when a schedule is configured;
// returns nil otherwise.
func startScheduler(c *container.Container) *queue.Scheduler {
	if c.Config.Crawler.Schedule == "" {
		log.Info().Msg("crawl scheduling disabled")
		return nil
	}

	scheduler := queue.NewScheduler(c.Config.Redis, c.Config.Crawler)
	if err := scheduler.RegisterCrawlJobs(); err != nil {
		log.Fatal().Err(err).Msg("failed to register scheduled crawls")
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("scheduler failed")
		}
	}()

	return scheduler
}
