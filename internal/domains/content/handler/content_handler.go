package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kculture-backend/internal/domains/content"
	"kculture-backend/internal/domains/content/service"
	"kculture-backend/internal/shared/paginate"
	"kculture-backend/internal/shared/response"
)

type Handler struct {
	svc *service.ContentService
}

func NewHandler(svc *service.ContentService) *Handler {
	return &Handler{svc: svc}
}

// List returns a paginated content listing
// GET /api/v1/contents?page=&page_size=&q=&content_type=&year=
func (h *Handler) List(c *gin.Context) {
	var req content.ListContentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	contents, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	p := paginate.New(req.Page, req.PageSize)
	response.Success(c, http.StatusOK,
		paginate.BuildResponse(p, contents, total, "contents", paginate.Identity[*content.Content]))
}

// GetByID returns one content and counts the view
// GET /api/v1/contents/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid content ID")
		return
	}

	found, err := h.svc.GetContent(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, found)
}

// Featured ranks by rating, then views
// GET /api/v1/contents/featured?limit=&content_type=
func (h *Handler) Featured(c *gin.Context) {
	contents, err := h.svc.Featured(c.Request.Context(), parseLimit(c), c.Query("content_type"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contents": contents})
}

// Popular ranks purely by views
// GET /api/v1/contents/popular?limit=&content_type=
func (h *Handler) Popular(c *gin.Context) {
	contents, err := h.svc.Popular(c.Request.Context(), parseLimit(c), c.Query("content_type"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contents": contents})
}

// Recent returns the newest titles
// GET /api/v1/contents/recent?limit=&content_type=
func (h *Handler) Recent(c *gin.Context) {
	contents, err := h.svc.Recent(c.Request.Context(), parseLimit(c), c.Query("content_type"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contents": contents})
}

// Search returns the first page of text matches
// GET /api/v1/contents/search?q=&limit=
func (h *Handler) Search(c *gin.Context) {
	contents, err := h.svc.Search(c.Request.Context(), c.Query("q"), parseLimit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contents": contents})
}

// Create creates a content (admin)
// POST /api/v1/contents
func (h *Handler) Create(c *gin.Context) {
	var req content.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Update partially updates a content (admin)
// PUT /api/v1/contents/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid content ID")
		return
	}

	var req content.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete removes a content and its spot links (admin)
// DELETE /api/v1/contents/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid content ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GetSpots lists the filming spots linked to a content
// GET /api/v1/contents/:id/spots
func (h *Handler) GetSpots(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid content ID")
		return
	}

	spots, err := h.svc.GetSpots(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"spots": spots})
}

// LinkSpot links a spot to a content (admin)
// POST /api/v1/contents/:id/spots
func (h *Handler) LinkSpot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid content ID")
		return
	}

	var req content.LinkSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	link, err := h.svc.LinkSpot(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, link)
}

// UnlinkSpot removes a spot link (admin)
// DELETE /api/v1/contents/:id/spots/:spotId
func (h *Handler) UnlinkSpot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid content ID")
		return
	}
	spotID, err := strconv.ParseInt(c.Param("spotId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid spot ID")
		return
	}

	if err := h.svc.UnlinkSpot(c.Request.Context(), id, spotID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unlinked": true})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationError(c, vErrs)
	case errors.Is(err, content.ErrContentNotFound),
		errors.Is(err, content.ErrLinkNotFound),
		errors.Is(err, content.ErrSpotNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, content.ErrInvalidContentType):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "failed to process content request")
	}
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
