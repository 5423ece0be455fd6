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

// TimeEntryService handles logged work.
type TimeEntryService struct {
	entryRepo   repository.TimeEntryRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	builder     *scope.Builder
}

// NewTimeEntryService creates a new TimeEntryService.
func NewTimeEntryService(
	entryRepo repository.TimeEntryRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	builder *scope.Builder,
) *TimeEntryService {
	return &TimeEntryService{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		builder:     builder,
	}
}

// CreateTimeEntryInput represents input for logging time. UserID defaults to
// the caller. Date is reduced to its UTC calendar date.
type CreateTimeEntryInput struct {
	UserID     *uint64
	ProjectID  uint64
	SubProject string
	TaskID     uint64
	Date       time.Time
	TimeSpent  float64
	AIUsed     bool
	AITool     string
	TimeSaved  float64
	Status     models.TimeEntryStatus
	Notes      string
}

// UpdateTimeEntryInput represents a partial update. The owner cannot change.
type UpdateTimeEntryInput struct {
	ProjectID  *uint64
	SubProject *string
	TaskID     *uint64
	Date       *time.Time
	TimeSpent  *float64
	AIUsed     *bool
	AITool     *string
	TimeSaved  *float64
	Status     *models.TimeEntryStatus
	Notes      *string
}

// ListTimeEntries returns the entries visible to the session, ordered by date.
func (s *TimeEntryService) ListTimeEntries(ctx context.Context, sess *session.Session, criteria scope.TimeEntryCriteria) ([]models.TimeEntry, error) {
	filter, err := s.builder.TimeEntries(ctx, sess, criteria)
	if err != nil {
		return nil, translate(err, ErrNotFound)
	}

	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// CreateTimeEntry logs time for the caller or for someone in their hierarchy.
func (s *TimeEntryService) CreateTimeEntry(ctx context.Context, sess *session.Session, input CreateTimeEntryInput) (*models.TimeEntry, error) {
	actor, err := authorize(sess, access.CanLogTime)
	if err != nil {
		return nil, err
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}

	owner := actor
	if input.UserID != nil && *input.UserID != actor.ID {
		if !view.Allows(*input.UserID) {
			return nil, ErrForbidden
		}
		owner, err = s.userRepo.FindByID(ctx, *input.UserID)
		if err != nil {
			return nil, translate(err, ErrEmployeeNotFound)
		}
	}

	if input.Date.IsZero() {
		return nil, invalid("date is required")
	}
	if input.TimeSpent <= 0 {
		return nil, invalid("time spent must be positive")
	}
	if err := validateHours(input.TimeSaved); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = models.TimeEntryStatusCompleted
	}
	if !status.Valid() {
		return nil, invalid("unknown time entry status %q", status)
	}

	entry := &models.TimeEntry{
		UserID:     owner.ID,
		Employee:   owner.Name,
		SubProject: strings.TrimSpace(input.SubProject),
		Date:       scope.TruncateDay(input.Date),
		TimeSpent:  input.TimeSpent,
		AIUsed:     input.AIUsed,
		TimeSaved:  input.TimeSaved,
		Status:     status,
		Notes:      input.Notes,
	}
	if input.AIUsed {
		entry.AITool = strings.TrimSpace(input.AITool)
	}
	if err := s.attachProject(ctx, view, entry, input.ProjectID); err != nil {
		return nil, err
	}
	if err := s.attachTask(ctx, entry, input.TaskID); err != nil {
		return nil, err
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}
	return entry, nil
}

// UpdateTimeEntry edits an entry owned inside the caller's hierarchy.
func (s *TimeEntryService) UpdateTimeEntry(ctx context.Context, sess *session.Session, id uint64, input UpdateTimeEntryInput) (*models.TimeEntry, error) {
	entry, view, err := s.findWritable(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil {
		if err := s.attachProject(ctx, view, entry, *input.ProjectID); err != nil {
			return nil, err
		}
	}
	if input.SubProject != nil {
		entry.SubProject = strings.TrimSpace(*input.SubProject)
	}
	if input.TaskID != nil {
		if err := s.attachTask(ctx, entry, *input.TaskID); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		entry.Date = scope.TruncateDay(*input.Date)
	}
	if input.TimeSpent != nil {
		if *input.TimeSpent <= 0 {
			return nil, invalid("time spent must be positive")
		}
		entry.TimeSpent = *input.TimeSpent
	}
	if input.TimeSaved != nil {
		if err := validateHours(*input.TimeSaved); err != nil {
			return nil, err
		}
		entry.TimeSaved = *input.TimeSaved
	}
	if input.AIUsed != nil {
		entry.AIUsed = *input.AIUsed
	}
	if input.AITool != nil {
		entry.AITool = strings.TrimSpace(*input.AITool)
	}
	if !entry.AIUsed {
		entry.AITool = ""
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, invalid("unknown time entry status %q", *input.Status)
		}
		entry.Status = *input.Status
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}
	return entry, nil
}

// DeleteTimeEntry removes an entry owned inside the caller's hierarchy.
func (s *TimeEntryService) DeleteTimeEntry(ctx context.Context, sess *session.Session, id uint64) error {
	if _, _, err := s.findWritable(ctx, sess, id); err != nil {
		return err
	}
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrTimeEntryNotFound)
	}
	return nil
}

func (s *TimeEntryService) findWritable(ctx context.Context, sess *session.Session, id uint64) (*models.TimeEntry, *scope.View, error) {
	if _, err := authorize(sess, access.CanLogTime); err != nil {
		return nil, nil, err
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, translate(err, ErrTimeEntryNotFound)
	}
	if !view.Allows(entry.UserID) {
		return nil, nil, ErrTimeEntryNotFound
	}
	return entry, view, nil
}

// attachProject copies the project name onto the entry. Zero clears it.
// Projects outside the caller's view are reported missing.
func (s *TimeEntryService) attachProject(ctx context.Context, view *scope.View, entry *models.TimeEntry, projectID uint64) error {
	if projectID == 0 {
		entry.ProjectID = 0
		entry.Project = ""
		return nil
	}
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return translate(err, ErrProjectNotFound)
	}
	if !projectVisible(view, project) {
		return ErrProjectNotFound
	}
	entry.ProjectID = project.ID
	entry.Project = project.Name
	return nil
}

// attachTask copies the task name onto the entry. Zero clears it.
func (s *TimeEntryService) attachTask(ctx context.Context, entry *models.TimeEntry, taskID uint64) error {
	if taskID == 0 {
		entry.TaskID = 0
		entry.Task = ""
		return nil
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return translate(err, ErrTaskNotFound)
	}
	entry.TaskID = task.ID
	entry.Task = task.Name
	return nil
}
