package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/time-management-api/internal/constants"
	apierrors "github.com/yukikurage/time-management-api/internal/errors"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/services"
	"github.com/yukikurage/time-management-api/internal/session"
)

// Authenticator resolves the identity behind a cookie session or bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, userID uint64) (*models.User, error)
	AuthenticateToken(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth authenticates the request via the session cookie or an
// Authorization bearer token, then stores a fresh session.Session in the
// context for the handlers.
func RequireAuth(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, auth)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthenticated) {
				logger.Error("authentication failed", zap.Error(err))
				apierrors.InternalError(c, "")
				return
			}
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeySession, session.New(user, c.GetString(constants.ContextKeyRequestID)))
		c.Next()
	}
}

func authenticate(c *gin.Context, auth Authenticator) (*models.User, error) {
	if token, ok := bearerToken(c); ok {
		return auth.AuthenticateToken(c.Request.Context(), token)
	}

	userID, ok := sessionUserID(sessions.Default(c).Get(constants.ContextKeyUserID))
	if !ok {
		return nil, services.ErrUnauthenticated
	}
	return auth.Authenticate(c.Request.Context(), userID)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.AuthorizationScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetSession retrieves the request session set by RequireAuth. Without one
// it returns nil, which every service treats as unauthenticated.
func GetSession(c *gin.Context) *session.Session {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return sessionUserID(userID)
}

func sessionUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
