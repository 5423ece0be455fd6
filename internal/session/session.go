// Package session carries the identity of one request through the core.
// A Session is created when a request is authenticated and dropped with it;
// nothing in the core caches one across requests.
package session

import (
	"errors"
	"time"

	"github.com/yukikurage/time-management-api/internal/models"
)

// ErrUnauthenticated is returned by any scoped operation called without a user.
var ErrUnauthenticated = errors.New("authentication required")

type Session struct {
	user      *models.User
	StartedAt time.Time
	RequestID string
}

// New starts a session for user. A nil user yields an anonymous session.
func New(user *models.User, requestID string) *Session {
	return &Session{
		user:      user,
		StartedAt: time.Now(),
		RequestID: requestID,
	}
}

// CurrentUser returns the authenticated user, or nil.
func (s *Session) CurrentUser() *models.User {
	if s == nil {
		return nil
	}
	return s.user
}

// Require returns the current user or ErrUnauthenticated.
func (s *Session) Require() (*models.User, error) {
	user := s.CurrentUser()
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
