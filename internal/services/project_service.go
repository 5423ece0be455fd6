package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/session"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	builder     *scope.Builder
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, builder *scope.Builder) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		builder:     builder,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name              string
	Category          string
	Department        string
	SubProjects       []string
	StartDate         *time.Time
	EndDate           *time.Time
	Status            models.ProjectStatus
	Progress          int
	AssignedEmployees []uint64
}

// UpdateProjectInput represents a partial update. AssignedEmployees, when
// non-nil, replaces the whole assignment list.
type UpdateProjectInput struct {
	Name              *string
	Category          *string
	Department        *string
	SubProjects       []string
	StartDate         *time.Time
	EndDate           *time.Time
	Status            *models.ProjectStatus
	Progress          *int
	AssignedEmployees []uint64
}

// ListProjects returns the projects visible to the session.
func (s *ProjectService) ListProjects(ctx context.Context, sess *session.Session, criteria scope.ProjectCriteria) ([]models.Project, error) {
	filter, err := s.builder.Projects(ctx, sess, criteria)
	if err != nil {
		return nil, translate(err, ErrNotFound)
	}

	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one visible project.
func (s *ProjectService) GetProject(ctx context.Context, sess *session.Session, id uint64) (*models.Project, error) {
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.findVisible(ctx, view, id)
}

// CreateProject creates a project with its assignment list.
func (s *ProjectService) CreateProject(ctx context.Context, sess *session.Session, input CreateProjectInput) (*models.Project, error) {
	if _, err := authorize(sess, access.CanCreateProject); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	status := input.Status
	if status == "" {
		status = models.ProjectStatusNotStarted
	}
	if !status.Valid() {
		return nil, invalid("unknown project status %q", status)
	}
	if err := validateProgress(input.Progress); err != nil {
		return nil, err
	}
	if err := validateSchedule(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if err := s.ensureUsersExist(ctx, input.AssignedEmployees); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:              name,
		Category:          strings.TrimSpace(input.Category),
		Department:        strings.TrimSpace(input.Department),
		SubProjects:       cleanNames(input.SubProjects),
		StartDate:         utcDate(input.StartDate),
		EndDate:           utcDate(input.EndDate),
		Status:            status,
		Progress:          input.Progress,
		AssignedEmployees: input.AssignedEmployees,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return s.projectRepo.FindByID(ctx, project.ID)
}

// UpdateProject applies a partial update to a visible project.
func (s *ProjectService) UpdateProject(ctx context.Context, sess *session.Session, id uint64, input UpdateProjectInput) (*models.Project, error) {
	if _, err := authorize(sess, access.CanEditProject); err != nil {
		return nil, err
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	project, err := s.findVisible(ctx, view, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		project.Name = name
	}
	if input.Category != nil {
		project.Category = strings.TrimSpace(*input.Category)
	}
	if input.Department != nil {
		project.Department = strings.TrimSpace(*input.Department)
	}
	if input.SubProjects != nil {
		project.SubProjects = cleanNames(input.SubProjects)
	}
	if input.StartDate != nil {
		project.StartDate = utcDate(input.StartDate)
	}
	if input.EndDate != nil {
		project.EndDate = utcDate(input.EndDate)
	}
	if err := validateSchedule(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, invalid("unknown project status %q", *input.Status)
		}
		project.Status = *input.Status
	}
	if input.Progress != nil {
		if err := validateProgress(*input.Progress); err != nil {
			return nil, err
		}
		project.Progress = *input.Progress
	}
	if input.AssignedEmployees != nil {
		if err := s.ensureUsersExist(ctx, input.AssignedEmployees); err != nil {
			return nil, err
		}
		project.AssignedEmployees = input.AssignedEmployees
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.projectRepo.FindByID(ctx, project.ID)
}

// DeleteProject removes a visible project. Tasks and time entries that
// reference it are kept.
func (s *ProjectService) DeleteProject(ctx context.Context, sess *session.Session, id uint64) error {
	if _, err := authorize(sess, access.CanDeleteProject); err != nil {
		return err
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return err
	}
	if _, err := s.findVisible(ctx, view, id); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrProjectNotFound)
	}
	return nil
}

// findVisible loads a project and applies the department-or-assignee rule.
func (s *ProjectService) findVisible(ctx context.Context, view *scope.View, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrProjectNotFound)
	}
	if !projectVisible(view, project) {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func projectVisible(view *scope.View, project *models.Project) bool {
	if view.OrgWide {
		return true
	}
	if view.User.Department != "" && project.Department == view.User.Department {
		return true
	}
	for _, id := range project.AssignedEmployees {
		if view.Members.Contains(id) {
			return true
		}
	}
	return false
}

func (s *ProjectService) ensureUsersExist(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	names, err := s.userRepo.FindNamesByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check assigned employees: %w", err)
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			return invalid("assigned employee %d does not exist", id)
		}
	}
	return nil
}

func validateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return invalid("progress must be between 0 and 100")
	}
	return nil
}

func validateSchedule(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalid("end date is before start date")
	}
	return nil
}

func cleanNames(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// utcDate truncates t to its UTC calendar date.
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := scope.TruncateDay(*t)
	return &day
}
