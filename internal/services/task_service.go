package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/constants"
	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/notify"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/session"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	builder     *scope.Builder
	notifier    notify.Notifier
	logger      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	builder *scope.Builder,
	notifier notify.Notifier,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		builder:     builder,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateTaskInput represents input for creating a task. When ProjectID is
// set the project name is taken from the project record.
type CreateTaskInput struct {
	Name          string
	Description   string
	ProjectID     uint64
	Project       string
	SubProject    string
	AssignedTo    *uint64
	EstimatedTime float64
	ActualTime    float64
	AIUsed        bool
	AITool        string
	TimeSaved     float64
	Status        models.TaskStatus
	DueDate       *time.Time
	Priority      models.TaskPriority
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Name          *string
	Description   *string
	ProjectID     *uint64
	SubProject    *string
	AssignedTo    *uint64
	Unassign      bool
	EstimatedTime *float64
	ActualTime    *float64
	AIUsed        *bool
	AITool        *string
	TimeSaved     *float64
	Status        *models.TaskStatus
	DueDate       *time.Time
	ClearDueDate  bool
	Priority      *models.TaskPriority
}

// ListTasks returns the tasks visible to the session, each with the display
// name of its assignee.
func (s *TaskService) ListTasks(ctx context.Context, sess *session.Session, criteria scope.TaskCriteria) ([]dto.TaskView, error) {
	filter, err := s.builder.Tasks(ctx, sess, criteria)
	if err != nil {
		return nil, translate(err, ErrNotFound)
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.enrich(ctx, tasks)
}

// GetTask returns one visible task
func (s *TaskService) GetTask(ctx context.Context, sess *session.Session, id uint64) (*dto.TaskView, error) {
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	task, err := s.findVisible(ctx, view, id)
	if err != nil {
		return nil, err
	}

	views, err := s.enrich(ctx, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateTask creates a new task and notifies its assignee
func (s *TaskService) CreateTask(ctx context.Context, sess *session.Session, input CreateTaskInput) (*models.Task, error) {
	actor, err := authorize(sess, access.CanCreateTask)
	if err != nil {
		return nil, err
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !status.Valid() {
		return nil, invalid("unknown task status %q", status)
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, invalid("unknown task priority %q", priority)
	}
	if err := validateHours(input.EstimatedTime, input.ActualTime, input.TimeSaved); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:          name,
		Description:   input.Description,
		Project:       strings.TrimSpace(input.Project),
		SubProject:    strings.TrimSpace(input.SubProject),
		EstimatedTime: input.EstimatedTime,
		ActualTime:    input.ActualTime,
		AIUsed:        input.AIUsed,
		TimeSaved:     input.TimeSaved,
		Status:        status,
		DueDate:       utcDate(input.DueDate),
		Priority:      priority,
	}
	if input.AIUsed {
		task.AITool = strings.TrimSpace(input.AITool)
	}

	if input.ProjectID != 0 {
		if err := s.attachProject(ctx, view, task, input.ProjectID); err != nil {
			return nil, err
		}
	}
	if input.AssignedTo != nil {
		if err := s.ensureAssignable(ctx, view, *input.AssignedTo); err != nil {
			return nil, err
		}
		assignee := *input.AssignedTo
		task.AssignedTo = &assignee
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if task.AssignedTo != nil {
		s.notifyAssigned(ctx, task, actor.ID)
	}
	return task, nil
}

// UpdateTask updates a visible task. Any status may follow any other.
func (s *TaskService) UpdateTask(ctx context.Context, sess *session.Session, id uint64, input UpdateTaskInput) (*models.Task, error) {
	actor, err := authorize(sess, access.CanEditTask)
	if err != nil {
		return nil, err
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	task, err := s.findVisible(ctx, view, id)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	oldAssignee := task.AssignedTo

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		task.Name = name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ProjectID != nil {
		if err := s.attachProject(ctx, view, task, *input.ProjectID); err != nil {
			return nil, err
		}
	}
	if input.SubProject != nil {
		task.SubProject = strings.TrimSpace(*input.SubProject)
	}
	if input.EstimatedTime != nil {
		task.EstimatedTime = *input.EstimatedTime
	}
	if input.ActualTime != nil {
		task.ActualTime = *input.ActualTime
	}
	if input.TimeSaved != nil {
		task.TimeSaved = *input.TimeSaved
	}
	if err := validateHours(task.EstimatedTime, task.ActualTime, task.TimeSaved); err != nil {
		return nil, err
	}
	if input.AIUsed != nil {
		task.AIUsed = *input.AIUsed
	}
	if input.AITool != nil {
		task.AITool = strings.TrimSpace(*input.AITool)
	}
	if !task.AIUsed {
		task.AITool = ""
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, invalid("unknown task status %q", *input.Status)
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, invalid("unknown task priority %q", *input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = utcDate(input.DueDate)
	}
	switch {
	case input.Unassign:
		task.AssignedTo = nil
	case input.AssignedTo != nil:
		if err := s.ensureAssignable(ctx, view, *input.AssignedTo); err != nil {
			return nil, err
		}
		assignee := *input.AssignedTo
		task.AssignedTo = &assignee
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if task.AssignedTo != nil && !sameAssignee(oldAssignee, task.AssignedTo) {
		s.notifyAssigned(ctx, task, actor.ID)
	}
	if task.Status != oldStatus {
		s.notifyStatusChanged(ctx, task, oldStatus, actor.ID)
	}
	return task, nil
}

// DeleteTask removes a visible task. Time entries that reference it are kept.
func (s *TaskService) DeleteTask(ctx context.Context, sess *session.Session, id uint64) error {
	if _, err := authorize(sess, access.CanDeleteTask); err != nil {
		return err
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return err
	}
	if _, err := s.findVisible(ctx, view, id); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrTaskNotFound)
	}
	return nil
}

// findVisible loads a task assigned inside the view. Unassigned tasks are
// visible to organization-wide roles only.
func (s *TaskService) findVisible(ctx context.Context, view *scope.View, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrTaskNotFound)
	}
	if view.OrgWide {
		return task, nil
	}
	if task.AssignedTo == nil || !view.Members.Contains(*task.AssignedTo) {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) attachProject(ctx context.Context, view *scope.View, task *models.Task, projectID uint64) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return translate(err, ErrProjectNotFound)
	}
	if !projectVisible(view, project) {
		return ErrProjectNotFound
	}
	task.ProjectID = project.ID
	task.Project = project.Name
	return nil
}

// ensureAssignable checks the assignee exists and, for restricted roles,
// sits inside the caller's hierarchy.
func (s *TaskService) ensureAssignable(ctx context.Context, view *scope.View, userID uint64) error {
	if !view.Allows(userID) {
		return ErrForbidden
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return translate(err, ErrEmployeeNotFound)
	}
	return nil
}

func (s *TaskService) enrich(ctx context.Context, tasks []models.Task) ([]dto.TaskView, error) {
	ids := make([]uint64, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo != nil {
			ids = append(ids, *t.AssignedTo)
		}
	}

	names, err := s.userRepo.FindNamesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignee names: %w", err)
	}

	views := make([]dto.TaskView, len(tasks))
	for i, t := range tasks {
		name := constants.UnassignedName
		if t.AssignedTo != nil {
			if n, ok := names[*t.AssignedTo]; ok {
				name = n
			}
		}
		views[i] = dto.TaskView{Task: t, AssignedToName: name}
	}
	return views, nil
}

func (s *TaskService) notifyAssigned(ctx context.Context, task *models.Task, actorID uint64) {
	event := notify.NewTaskEvent(notify.EventTaskAssigned, task, actorID)
	if err := s.notifier.TaskAssigned(ctx, event); err != nil {
		s.logger.Warn("task notification failed", zap.Uint64("task_id", task.ID), zap.Error(err))
	}
}

func (s *TaskService) notifyStatusChanged(ctx context.Context, task *models.Task, oldStatus models.TaskStatus, actorID uint64) {
	if task.AssignedTo == nil {
		return
	}
	event := notify.NewTaskEvent(notify.EventTaskStatusChanged, task, actorID)
	event.OldStatus = oldStatus
	if err := s.notifier.TaskStatusChanged(ctx, event); err != nil {
		s.logger.Warn("task notification failed", zap.Uint64("task_id", task.ID), zap.Error(err))
	}
}

func sameAssignee(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func validateHours(values ...float64) error {
	for _, v := range values {
		if v < 0 {
			return invalid("hours cannot be negative")
		}
	}
	return nil
}
