package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/domains/spot/service"
	"kculture-backend/internal/shared/paginate"
	"kculture-backend/internal/shared/response"
)

type Handler struct {
	svc *service.SpotService
}

func NewHandler(svc *service.SpotService) *Handler {
	return &Handler{svc: svc}
}

// List returns a paginated spot listing
// GET /api/v1/spots?page=&page_size=&q=&category=
func (h *Handler) List(c *gin.Context) {
	var req spot.ListSpotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	spots, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	p := paginate.New(req.Page, req.PageSize)
	response.Success(c, http.StatusOK,
		paginate.BuildResponse(p, spots, total, "spots", paginate.Identity[*spot.Spot]))
}

// GetByID returns one spot and counts the view
// GET /api/v1/spots/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid spot ID")
		return
	}

	s, err := h.svc.GetSpot(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, s)
}

// Featured returns the top spots by views, optionally per category
// GET /api/v1/spots/featured?limit=&category=
func (h *Handler) Featured(c *gin.Context) {
	limit := parseLimit(c)
	spots, err := h.svc.Featured(c.Request.Context(), limit, c.Query("category"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"spots": spots})
}

// Popular returns the most viewed spots
// GET /api/v1/spots/popular?limit=
func (h *Handler) Popular(c *gin.Context) {
	spots, err := h.svc.Popular(c.Request.Context(), parseLimit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"spots": spots})
}

// Search returns the first page of text matches
// GET /api/v1/spots/search?q=&limit=
func (h *Handler) Search(c *gin.Context) {
	spots, err := h.svc.Search(c.Request.Context(), c.Query("q"), parseLimit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"spots": spots})
}

// GetByCategory is the category-scoped listing
// GET /api/v1/spots/category/:category
func (h *Handler) GetByCategory(c *gin.Context) {
	var req spot.ListSpotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.Category = c.Param("category")

	spots, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	p := paginate.New(req.Page, req.PageSize)
	response.Success(c, http.StatusOK,
		paginate.BuildResponse(p, spots, total, "spots", paginate.Identity[*spot.Spot]))
}

// Create creates a spot (admin)
// POST /api/v1/spots
func (h *Handler) Create(c *gin.Context) {
	var req spot.CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	s, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, s)
}

// Update partially updates a spot (admin)
// PUT /api/v1/spots/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid spot ID")
		return
	}

	var req spot.UpdateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	s, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, s)
}

// Delete removes a spot and its children (admin)
// DELETE /api/v1/spots/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid spot ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationError(c, vErrs)
	case errors.Is(err, spot.ErrSpotNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, spot.ErrDuplicateContentID):
		response.Conflict(c, err.Error())
	case errors.Is(err, spot.ErrInvalidCategory):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "failed to process spot request")
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
