package queue

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"kculture-backend/internal/config"
	"kculture-backend/internal/domains/crawler"
)

// Scheduler registers periodic crawl runs. An empty cron spec disables
// scheduling; the crawls are then only reachable through the API.
type Scheduler struct {
	scheduler *asynq.Scheduler
	spec      string
}

func NewScheduler(redisCfg config.RedisConfig, crawlerCfg config.CrawlerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Host,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		&asynq.SchedulerOpts{Location: time.UTC},
	)

	return &Scheduler{
		scheduler: scheduler,
		spec:      crawlerCfg.Schedule,
	}
}

// RegisterCrawlJobs schedules the drama and k-pop crawls on the configured
// cron spec, using the predefined keyword seeds.
func (s *Scheduler) RegisterCrawlJobs() error {
	if s.spec == "" {
		log.Info().Msg("no crawl schedule configured, skipping registration")
		return nil
	}

	for _, kind := range []crawler.Kind{crawler.KindDrama, crawler.KindKpop} {
		task, err := NewCrawlTask(kind, nil)
		if err != nil {
			return err
		}

		if _, err := s.scheduler.Register(
			s.spec,
			task,
			asynq.Queue(QueueCrawler),
			asynq.MaxRetry(1),
			asynq.Timeout(30*time.Minute),
		); err != nil {
			return err
		}

		log.Info().Str("kind", kind.String()).Str("spec", s.spec).Msg("registered scheduled crawl")
	}

	return nil
}

// Run blocks until Shutdown is called.
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
