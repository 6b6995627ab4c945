package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kculture-backend/internal/domains/crawler"
	"kculture-backend/internal/shared/response"
)

// Enqueuer hands crawl jobs to the background queue.
type Enqueuer interface {
	EnqueueCrawl(ctx context.Context, kind crawler.Kind, keywords []string) (string, error)
}

// StatusReader reports the last run per crawl kind.
type StatusReader interface {
	Status(ctx context.Context) (map[string]*crawler.RunStatus, error)
}

type Handler struct {
	queue  Enqueuer
	status StatusReader
}

func NewHandler(queue Enqueuer, status StatusReader) *Handler {
	return &Handler{queue: queue, status: status}
}

// StartDrama enqueues a drama filming-location crawl
// POST /api/v1/crawler/drama
func (h *Handler) StartDrama(c *gin.Context) {
	h.start(c, crawler.KindDrama)
}

// StartKpop enqueues a k-pop landmark crawl
// POST /api/v1/crawler/kpop
func (h *Handler) StartKpop(c *gin.Context) {
	h.start(c, crawler.KindKpop)
}

// Status returns the last recorded outcome per crawl kind
// GET /api/v1/crawler/status
func (h *Handler) Status(c *gin.Context) {
	statuses, err := h.status.Status(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to read crawl status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"runs": statuses})
}

func (h *Handler) start(c *gin.Context, kind crawler.Kind) {
	var req crawler.CrawlRequest
	// the body is optional; an empty body means the predefined keywords
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ValidationError(c, verrs)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	taskID, err := h.queue.EnqueueCrawl(c.Request.Context(), kind, req.Keywords)
	if err != nil {
		response.InternalServerError(c, "failed to enqueue crawl")
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"task_id": taskID,
		"kind":    kind.String(),
	})
}
