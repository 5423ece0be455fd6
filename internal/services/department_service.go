package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/session"
)

// DepartmentService manages the department catalogue. Users and projects
// refer to departments by name, so renames and deletes leave them untouched.
type DepartmentService struct {
	deptRepo repository.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(deptRepo repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo}
}

// DepartmentInput is used for both create and update. On update, nil fields
// are left alone.
type DepartmentInput struct {
	Name        *string
	Code        *string
	Description *string
}

// ListDepartments returns every department to any authenticated caller.
func (s *DepartmentService) ListDepartments(ctx context.Context, sess *session.Session) ([]models.Department, error) {
	if _, err := sess.Require(); err != nil {
		return nil, err
	}
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, sess *session.Session, input DepartmentInput) (*models.Department, error) {
	if _, err := authorize(sess, access.CanEditDepartments); err != nil {
		return nil, err
	}

	dept := &models.Department{}
	if err := s.apply(ctx, dept, input); err != nil {
		return nil, err
	}
	if dept.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return dept, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, sess *session.Session, id uint64, input DepartmentInput) (*models.Department, error) {
	if _, err := authorize(sess, access.CanEditDepartments); err != nil {
		return nil, err
	}

	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrDepartmentNotFound)
	}
	if err := s.apply(ctx, dept, input); err != nil {
		return nil, err
	}

	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return dept, nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, sess *session.Session, id uint64) error {
	if _, err := authorize(sess, access.CanEditDepartments); err != nil {
		return err
	}
	if err := s.deptRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrDepartmentNotFound)
	}
	return nil
}

func (s *DepartmentService) apply(ctx context.Context, dept *models.Department, input DepartmentInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return ErrNameRequired
		}
		existing, err := s.deptRepo.FindByName(ctx, name)
		switch {
		case err == nil && existing.ID != dept.ID:
			return ErrDepartmentNameTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check department name: %w", err)
		}
		dept.Name = name
	}
	if input.Code != nil {
		dept.Code = strings.ToUpper(strings.TrimSpace(*input.Code))
	}
	if input.Description != nil {
		dept.Description = *input.Description
	}
	return nil
}
