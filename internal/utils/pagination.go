package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/time-management-api/internal/constants"
)

// PaginationParams holds the pagination parameters. A zero Limit means the
// caller asked for every row.
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams extracts page and limit from the query string. Both are
// optional; either one alone implies the other's default.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	var params PaginationParams

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < constants.MinPageSize {
			return params, fmt.Errorf("invalid page %q", raw)
		}
		params.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < constants.MinPageSize || limit > constants.MaxPageSize {
			return params, fmt.Errorf("limit must be between %d and %d", constants.MinPageSize, constants.MaxPageSize)
		}
		params.Limit = limit
	}
	switch {
	case params.Page > 0 && params.Limit == 0:
		params.Limit = constants.DefaultPageSize
	case params.Limit > 0 && params.Page == 0:
		params.Page = constants.MinPageSize
	}
	return params, nil
}
