package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/access"
	apierrors "github.com/yukikurage/time-management-api/internal/errors"
)

// RequireRoute rejects callers whose role may not open route. The response
// carries the landing route the client should redirect to.
func RequireRoute(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetSession(c).CurrentUser()
		if user == nil {
			apierrors.Unauthorized(c, "")
			return
		}
		if !access.HasRouteAccess(user, route) {
			apierrors.ForbiddenWithDetails(c, "Route not available for your role", gin.H{
				"route":    route,
				"redirect": access.SafeDefaultRoute,
			})
			return
		}
		c.Next()
	}
}

// RequireCapability rejects callers whose role lacks capability.
func RequireCapability(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetSession(c).CurrentUser()
		if user == nil {
			apierrors.Unauthorized(c, "")
			return
		}
		if !access.HasCapability(user, capability) {
			apierrors.ForbiddenWithDetails(c, "Action not permitted for your role", gin.H{
				"capability": capability,
			})
			return
		}
		c.Next()
	}
}
