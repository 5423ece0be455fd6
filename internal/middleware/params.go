package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/constants"
	apierrors "github.com/yukikurage/time-management-api/internal/errors"
)

// RequireIDParam parses the :id path parameter and stores it in the context.
func RequireIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid ID")
			return
		}
		c.Set(constants.ContextKeyResourceID, id)
		c.Next()
	}
}

// GetResourceID returns the id parsed by RequireIDParam.
func GetResourceID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyResourceID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
