package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kculture-backend/internal/domains/user"
	"kculture-backend/internal/domains/user/service"
	"kculture-backend/internal/shared/middleware"
	"kculture-backend/internal/shared/response"
)

type Handler struct {
	svc *service.AuthService
}

func NewHandler(svc *service.AuthService) *Handler {
	return &Handler{svc: svc}
}

// Register creates an account
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	account, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, account)
}

// Login issues an access/refresh token pair
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// Refresh exchanges a refresh token for a new pair
// POST /api/v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// Me returns the authenticated profile
// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	account, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, account)
}

// Promote grants admin to a user (admin)
// POST /api/v1/auth/promote/:id
func (h *Handler) Promote(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	account, err := h.svc.Promote(c.Request.Context(), targetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, account)
}

// Demote removes admin from a user; self-demotion is rejected (admin)
// POST /api/v1/auth/demote/:id
func (h *Handler) Demote(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	account, err := h.svc.Demote(c.Request.Context(), actorID, targetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, account)
}

// Deactivate disables an account (admin)
// POST /api/v1/auth/deactivate/:id
func (h *Handler) Deactivate(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	account, err := h.svc.Deactivate(c.Request.Context(), targetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, account)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationError(c, vErrs)
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrAccountInactive):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, user.ErrSelfDemotion),
		errors.Is(err, user.ErrAlreadyAdmin),
		errors.Is(err, user.ErrNotAdmin):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "failed to process auth request")
	}
}
