package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/session"
)

var (
	ErrUnauthenticated = session.ErrUnauthenticated
	ErrForbidden       = errors.New("permission denied")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")

	ErrEmployeeNotFound   = fmt.Errorf("employee %w", ErrNotFound)
	ErrManagerNotFound    = fmt.Errorf("manager %w", ErrNotFound)
	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound       = fmt.Errorf("task %w", ErrNotFound)
	ErrTimeEntryNotFound  = fmt.Errorf("time entry %w", ErrNotFound)
	ErrDepartmentNotFound = fmt.Errorf("department %w", ErrNotFound)
	ErrAIToolNotFound     = fmt.Errorf("AI tool %w", ErrNotFound)

	ErrEmailTaken          = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrDepartmentNameTaken = fmt.Errorf("%w: department name already in use", ErrConflict)
	ErrAIToolNameTaken     = fmt.Errorf("%w: AI tool name already in use", ErrConflict)
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPasswordTooShort    = fmt.Errorf("%w: password too short", ErrInvalidInput)
	ErrNameRequired        = fmt.Errorf("%w: name is required", ErrInvalidInput)
)

// invalid wraps a validation message in ErrInvalidInput.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translate maps store and criteria errors onto the service taxonomy.
// notFound is returned for a missing record.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, scope.ErrInvalidCriteria):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}

// authorize returns the session user when their role grants c.
func authorize(sess *session.Session, c access.Capability) (*models.User, error) {
	user, err := sess.Require()
	if err != nil {
		return nil, err
	}
	if !access.HasCapability(user, c) {
		return nil, ErrForbidden
	}
	return user, nil
}
