// Package http provides HTTP handlers for user registry operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/users/internal/httputil"
	"github.com/allisson/users/internal/user/domain"
	"github.com/allisson/users/internal/user/http/dto"
	"github.com/allisson/users/internal/user/usecase"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// ListHandler returns all users.
// GET /api/v1/users
func (h *UserHandler) ListHandler(c *gin.Context) {
	users, err := h.userUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// CreateHandler registers a new user.
// POST /api/v1/users
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Create(c.Request.Context(), dto.ToUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// FullUpdateHandler replaces all fields of an existing user.
// PUT /api/v1/users/:id
func (h *UserHandler) FullUpdateHandler(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.FullUpdate(c.Request.Context(), id, dto.ToUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// PartialUpdateHandler overwrites only the fields present in the request body.
// PATCH /api/v1/users/:id
func (h *UserHandler) PartialUpdateHandler(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.PartialUpdate(c.Request.Context(), id, dto.ToUserPatch(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteHandler removes an existing user.
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchByDateRangeHandler returns users born within an inclusive date range.
// GET /api/v1/users/by-date-range?from_date=YYYY-MM-DD&to_date=YYYY-MM-DD
func (h *UserHandler) SearchByDateRangeHandler(c *gin.Context) {
	from, ok := h.dateQuery(c, "from_date")
	if !ok {
		return
	}
	to, ok := h.dateQuery(c, "to_date")
	if !ok {
		return
	}

	users, err := h.userUseCase.SearchByBirthDateRange(c.Request.Context(), from, to)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// userID parses the :id path parameter, writing a 400 response on failure.
func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid user id %q", c.Param("id")), h.logger)
		return 0, false
	}
	return id, true
}

// dateQuery parses a required date query parameter, writing a 400 response on failure.
func (h *UserHandler) dateQuery(c *gin.Context, name string) (domain.Date, bool) {
	value := c.Query(name)
	if value == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("%s query parameter is required", name), h.logger)
		return domain.Date{}, false
	}

	date, err := domain.ParseDate(value)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid %s: %w", name, err), h.logger)
		return domain.Date{}, false
	}
	return date, true
}
