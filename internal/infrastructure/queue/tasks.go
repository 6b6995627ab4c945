package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"kculture-backend/internal/domains/crawler"
)

const (
	TypeCrawlDrama = "crawler:drama"
	TypeCrawlKpop  = "crawler:kpop"

	// QueueCrawler keeps crawl jobs off the default queue so a long crawl
	// never starves other work.
	QueueCrawler = "crawler"
)

// CrawlPayload is the body of both crawl task types. Empty keywords mean
// the predefined seeds.
type CrawlPayload struct {
	Keywords []string `json:"keywords,omitempty"`
}

// NewCrawlTask builds the asynq task for one crawl kind.
func NewCrawlTask(kind crawler.Kind, keywords []string) (*asynq.Task, error) {
	payload, err := json.Marshal(CrawlPayload{Keywords: keywords})
	if err != nil {
		return nil, err
	}

	switch kind {
	case crawler.KindDrama:
		return asynq.NewTask(TypeCrawlDrama, payload), nil
	case crawler.KindKpop:
		return asynq.NewTask(TypeCrawlKpop, payload), nil
	default:
		return nil, fmt.Errorf("queue: unknown crawl kind %q", kind)
	}
}
