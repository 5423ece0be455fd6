package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/auth"
	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/session"
)

var ErrAccountInactive = fmt.Errorf("%w: account is inactive", ErrForbidden)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the authenticated user plus a bearer token.
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status == models.EmployeeStatusInactive {
		return nil, ErrAccountInactive
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate loads the user behind a session cookie or token. A user that
// was deleted or deactivated since login is unauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Status == models.EmployeeStatusInactive {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// AuthenticateToken resolves a bearer token to its user.
func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return s.Authenticate(ctx, userID)
}

// Permissions describes what the session's role grants.
func (s *AuthService) Permissions(sess *session.Session) (*dto.PermissionsDTO, error) {
	user, err := sess.Require()
	if err != nil {
		return nil, err
	}
	perms := dto.ToPermissionsDTO(user.Role)
	return &perms, nil
}

// RouteAccess answers whether the session may open route, with the landing
// route to use when it may not.
func (s *AuthService) RouteAccess(sess *session.Session, route string) (*dto.RouteAccessDTO, error) {
	user, err := sess.Require()
	if err != nil {
		return nil, err
	}
	result := &dto.RouteAccessDTO{Route: route, Allowed: access.HasRouteAccess(user, route)}
	if !result.Allowed {
		result.Redirect = access.SafeDefaultRoute
	}
	return result, nil
}
