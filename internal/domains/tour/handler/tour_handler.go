package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kculture-backend/internal/domains/tour"
	"kculture-backend/internal/domains/tour/service"
	"kculture-backend/internal/shared/paginate"
	"kculture-backend/internal/shared/response"
)

type Handler struct {
	svc *service.TourService
}

func NewHandler(svc *service.TourService) *Handler {
	return &Handler{svc: svc}
}

// List returns a paginated tour listing
// GET /api/v1/tours?page=&page_size=&q=&featured=
func (h *Handler) List(c *gin.Context) {
	var req tour.ListToursRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	tours, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	p := paginate.New(req.Page, req.PageSize)
	response.Success(c, http.StatusOK,
		paginate.BuildResponse(p, tours, total, "tours", paginate.Identity[*tour.Tour]))
}

// GetByID returns one tour with its ordered stops and counts the view
// GET /api/v1/tours/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	t, err := h.svc.GetTour(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, t)
}

// Featured lists editorially flagged tours
// GET /api/v1/tours/featured?limit=
func (h *Handler) Featured(c *gin.Context) {
	tours, err := h.svc.Featured(c.Request.Context(), parseLimit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tours": tours})
}

// Popular ranks tours by views
// GET /api/v1/tours/popular?limit=
func (h *Handler) Popular(c *gin.Context) {
	tours, err := h.svc.Popular(c.Request.Context(), parseLimit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tours": tours})
}

// Search returns the first page of text matches
// GET /api/v1/tours/search?q=&limit=
func (h *Handler) Search(c *gin.Context) {
	tours, err := h.svc.Search(c.Request.Context(), c.Query("q"), parseLimit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tours": tours})
}

// Create creates a tour with its stops (admin)
// POST /api/v1/tours
func (h *Handler) Create(c *gin.Context) {
	var req tour.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	t, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, t)
}

// Update partially updates a tour (admin)
// PUT /api/v1/tours/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	var req tour.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, t)
}

// Delete removes a tour and its stops (admin)
// DELETE /api/v1/tours/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GetSpots lists the stops of a tour sorted by order
// GET /api/v1/tours/:id/spots
func (h *Handler) GetSpots(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	stops, err := h.svc.GetTourSpots(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour_spots": stops})
}

// AddSpot appends a stop to a tour (admin)
// POST /api/v1/tours/:id/spots
func (h *Handler) AddSpot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	var req tour.CreateTourSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	stop, err := h.svc.AddSpot(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, stop)
}

// RemoveSpot deletes a stop (admin)
// DELETE /api/v1/tours/:id/spots/:spotId
func (h *Handler) RemoveSpot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}
	spotID, err := strconv.ParseInt(c.Param("spotId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid spot ID")
		return
	}

	if err := h.svc.RemoveSpot(c.Request.Context(), id, spotID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// Reorder bulk-updates stop positions; unknown pairs are skipped (admin)
// PUT /api/v1/tours/:id/spots/reorder
func (h *Handler) Reorder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	var req tour.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.svc.Reorder(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationError(c, vErrs)
	case errors.Is(err, tour.ErrTourNotFound),
		errors.Is(err, tour.ErrTourSpotNotFound),
		errors.Is(err, tour.ErrSpotNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalServerError(c, "failed to process tour request")
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
