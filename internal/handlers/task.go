package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the tasks assigned inside the caller's hierarchy.
// Query: search, project, sub_project, status, page, limit.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), middleware.GetSession(c), scope.TaskCriteria{
		Search:     c.Query("search"),
		Project:    c.Query("project"),
		SubProject: c.Query("sub_project"),
		Status:     c.Query("status"),
		Page:       params.Page,
		PageSize:   params.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	list(c, http.StatusOK, tasks, params)
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	due, ok := parseDate(c, "due_date", req.DueDate)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetSession(c), services.CreateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		ProjectID:     req.ProjectID,
		Project:       req.Project,
		SubProject:    req.SubProject,
		AssignedTo:    req.AssignedTo,
		EstimatedTime: req.EstimatedTime,
		ActualTime:    req.ActualTime,
		AIUsed:        req.AIUsed,
		AITool:        req.AITool,
		TimeSaved:     req.TimeSaved,
		Status:        req.Status,
		DueDate:       due,
		Priority:      req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	due, ok := parseDate(c, "due_date", req.DueDate)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetSession(c), id, services.UpdateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		ProjectID:     req.ProjectID,
		SubProject:    req.SubProject,
		AssignedTo:    req.AssignedTo,
		Unassign:      req.Unassign,
		EstimatedTime: req.EstimatedTime,
		ActualTime:    req.ActualTime,
		AIUsed:        req.AIUsed,
		AITool:        req.AITool,
		TimeSaved:     req.TimeSaved,
		Status:        req.Status,
		DueDate:       due,
		ClearDueDate:  req.ClearDueDate,
		Priority:      req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
