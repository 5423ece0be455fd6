package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/auth"
	"github.com/yukikurage/time-management-api/internal/constants"
	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/session"
)

// EmployeeService handles the employee directory.
type EmployeeService struct {
	userRepo repository.UserRepository
	builder  *scope.Builder
	hasher   *auth.PasswordHasher
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(userRepo repository.UserRepository, builder *scope.Builder, hasher *auth.PasswordHasher) *EmployeeService {
	return &EmployeeService{
		userRepo: userRepo,
		builder:  builder,
		hasher:   hasher,
	}
}

// CreateEmployeeInput represents input for creating an employee.
type CreateEmployeeInput struct {
	Name        string
	Email       string
	Password    string
	Role        models.Role
	Designation string
	Status      models.EmployeeStatus
	Avatar      string
	Department  string
	ManagerID   *uint64
}

// UpdateEmployeeInput represents a partial update. Nil fields are left alone.
type UpdateEmployeeInput struct {
	Name         *string
	Email        *string
	Password     *string
	Role         *models.Role
	Designation  *string
	Status       *models.EmployeeStatus
	Avatar       *string
	Department   *string
	ManagerID    *uint64
	ClearManager bool
}

// ListEmployees returns the employees visible to the session, each with the
// display name of their manager.
func (s *EmployeeService) ListEmployees(ctx context.Context, sess *session.Session, criteria scope.EmployeeCriteria) ([]dto.EmployeeView, error) {
	filter, err := s.builder.Employees(ctx, sess, criteria)
	if err != nil {
		return nil, translate(err, ErrNotFound)
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return s.enrich(ctx, users)
}

// GetEmployee returns one employee inside the caller's hierarchy.
func (s *EmployeeService) GetEmployee(ctx context.Context, sess *session.Session, id uint64) (*dto.EmployeeView, error) {
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !view.Members.Contains(id) {
		return nil, ErrEmployeeNotFound
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrEmployeeNotFound)
	}

	views, err := s.enrich(ctx, []models.User{*user})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateEmployee adds a user to the directory.
func (s *EmployeeService) CreateEmployee(ctx context.Context, sess *session.Session, input CreateEmployeeInput) (*models.User, error) {
	actor, err := authorize(sess, access.CanCreateEmployee)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := input.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if err := checkRoleAssignment(actor, role); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.EmployeeStatusActive
	}
	if !status.Valid() {
		return nil, invalid("unknown employee status %q", status)
	}

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	if input.ManagerID != nil {
		if err := s.ensureManager(ctx, *input.ManagerID); err != nil {
			return nil, err
		}
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		Designation:  strings.TrimSpace(input.Designation),
		Status:       status,
		Avatar:       input.Avatar,
		Department:   strings.TrimSpace(input.Department),
		ManagerID:    input.ManagerID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return user, nil
}

// UpdateEmployee applies a partial update.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, sess *session.Session, id uint64, input UpdateEmployeeInput) (*models.User, error) {
	actor, err := authorize(sess, access.CanEditEmployee)
	if err != nil {
		return nil, err
	}

	user, err := s.findVisible(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		user.Name = name
	}
	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}
	if input.Role != nil {
		if err := checkRoleAssignment(actor, *input.Role); err != nil {
			return nil, err
		}
		if user.Role == models.RoleSuperAdmin && actor.Role != models.RoleSuperAdmin {
			return nil, ErrForbidden
		}
		user.Role = *input.Role
	}
	if input.Designation != nil {
		user.Designation = strings.TrimSpace(*input.Designation)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, invalid("unknown employee status %q", *input.Status)
		}
		user.Status = *input.Status
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}
	switch {
	case input.ClearManager:
		user.ManagerID = nil
	case input.ManagerID != nil:
		if *input.ManagerID == user.ID {
			return nil, invalid("an employee cannot manage themselves")
		}
		if err := s.ensureManager(ctx, *input.ManagerID); err != nil {
			return nil, err
		}
		managerID := *input.ManagerID
		user.ManagerID = &managerID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return user, nil
}

// DeleteEmployee removes a user. Their tasks, entries and reports keep the
// dangling reference.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, sess *session.Session, id uint64) error {
	actor, err := authorize(sess, access.CanDeleteEmployee)
	if err != nil {
		return err
	}
	if actor.ID == id {
		return invalid("cannot delete your own account")
	}

	if _, err := s.findVisible(ctx, sess, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrEmployeeNotFound)
	}
	return nil
}

func (s *EmployeeService) findVisible(ctx context.Context, sess *session.Session, id uint64) (*models.User, error) {
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !view.Members.Contains(id) {
		return nil, ErrEmployeeNotFound
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrEmployeeNotFound)
	}
	return user, nil
}

// enrich resolves manager names in one query. A missing or deleted manager
// shows as "None".
func (s *EmployeeService) enrich(ctx context.Context, users []models.User) ([]dto.EmployeeView, error) {
	managerIDs := make([]uint64, 0, len(users))
	for _, u := range users {
		if u.ManagerID != nil {
			managerIDs = append(managerIDs, *u.ManagerID)
		}
	}

	names, err := s.userRepo.FindNamesByIDs(ctx, managerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load manager names: %w", err)
	}

	views := make([]dto.EmployeeView, len(users))
	for i, u := range users {
		manager := constants.NoManagerName
		if u.ManagerID != nil {
			if name, ok := names[*u.ManagerID]; ok {
				manager = name
			}
		}
		views[i] = dto.ToEmployeeView(u, manager)
	}
	return views, nil
}

func (s *EmployeeService) ensureEmailFree(ctx context.Context, email string, ownerID uint64) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.ID != ownerID {
			return ErrEmailTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func (s *EmployeeService) ensureManager(ctx context.Context, managerID uint64) error {
	if _, err := s.userRepo.FindByID(ctx, managerID); err != nil {
		return translate(err, ErrManagerNotFound)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", invalid("a valid email is required")
	}
	return email, nil
}

// checkRoleAssignment rejects unknown roles and keeps super_admin grants
// with super admins.
func checkRoleAssignment(actor *models.User, role models.Role) error {
	if !role.Valid() {
		return invalid("unknown role %q", role)
	}
	if role == models.RoleSuperAdmin && actor.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}
	return nil
}
