package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/constants"
	"github.com/yukikurage/time-management-api/internal/dto"
	apierrors "github.com/yukikurage/time-management-api/internal/errors"
	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/services"
	"github.com/yukikurage/time-management-api/internal/utils"
)

// respondError maps service errors onto HTTP responses. Anything unexpected
// is attached to the context for the request logger and reported as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return false
	}
	return true
}

func resourceID(c *gin.Context) (uint64, bool) {
	id, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid ID")
	}
	return id, ok
}

func pagination(c *gin.Context) (utils.PaginationParams, bool) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return params, false
	}
	return params, true
}

// parseDate reads an optional date field; nil stays nil.
func parseDate(c *gin.Context, field string, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := scope.ParseDate(*value)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s: %v", field, err))
		return nil, false
	}
	return &t, true
}

func list[T any](c *gin.Context, status int, items []T, params utils.PaginationParams) {
	c.JSON(status, dto.NewListResponse(items, params.Page, params.Limit))
}
