package dto

import (
	"github.com/yukikurage/time-management-api/internal/models"
)

// Request bodies. Dates are strings in YYYY-MM-DD or RFC 3339 form and are
// parsed by the handlers. Update bodies use pointers so an absent field is
// left alone; the Clear*/Unassign flags stand in for an explicit null.

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateEmployeeRequest struct {
	Name        string                `json:"name" binding:"required"`
	Email       string                `json:"email" binding:"required"`
	Password    string                `json:"password" binding:"required"`
	Role        models.Role           `json:"role"`
	Designation string                `json:"designation"`
	Status      models.EmployeeStatus `json:"status"`
	Avatar      string                `json:"avatar"`
	Department  string                `json:"department"`
	ManagerID   *uint64               `json:"manager_id"`
}

type UpdateEmployeeRequest struct {
	Name         *string                `json:"name"`
	Email        *string                `json:"email"`
	Password     *string                `json:"password"`
	Role         *models.Role           `json:"role"`
	Designation  *string                `json:"designation"`
	Status       *models.EmployeeStatus `json:"status"`
	Avatar       *string                `json:"avatar"`
	Department   *string                `json:"department"`
	ManagerID    *uint64                `json:"manager_id"`
	ClearManager bool                   `json:"clear_manager"`
}

type CreateProjectRequest struct {
	Name              string               `json:"name" binding:"required"`
	Category          string               `json:"category"`
	Department        string               `json:"department"`
	SubProjects       []string             `json:"sub_projects"`
	StartDate         *string              `json:"start_date"`
	EndDate           *string              `json:"end_date"`
	Status            models.ProjectStatus `json:"status"`
	Progress          int                  `json:"progress"`
	AssignedEmployees []uint64             `json:"assigned_employees"`
}

type UpdateProjectRequest struct {
	Name              *string               `json:"name"`
	Category          *string               `json:"category"`
	Department        *string               `json:"department"`
	SubProjects       []string              `json:"sub_projects"`
	StartDate         *string               `json:"start_date"`
	EndDate           *string               `json:"end_date"`
	Status            *models.ProjectStatus `json:"status"`
	Progress          *int                  `json:"progress"`
	AssignedEmployees []uint64              `json:"assigned_employees"`
}

type CreateTaskRequest struct {
	Name          string              `json:"name" binding:"required"`
	Description   string              `json:"description"`
	ProjectID     uint64              `json:"project_id"`
	Project       string              `json:"project"`
	SubProject    string              `json:"sub_project"`
	AssignedTo    *uint64             `json:"assigned_to"`
	EstimatedTime float64             `json:"estimated_time"`
	ActualTime    float64             `json:"actual_time"`
	AIUsed        bool                `json:"ai_used"`
	AITool        string              `json:"ai_tool"`
	TimeSaved     float64             `json:"time_saved"`
	Status        models.TaskStatus   `json:"status"`
	DueDate       *string             `json:"due_date"`
	Priority      models.TaskPriority `json:"priority"`
}

type UpdateTaskRequest struct {
	Name          *string              `json:"name"`
	Description   *string              `json:"description"`
	ProjectID     *uint64              `json:"project_id"`
	SubProject    *string              `json:"sub_project"`
	AssignedTo    *uint64              `json:"assigned_to"`
	Unassign      bool                 `json:"unassign"`
	EstimatedTime *float64             `json:"estimated_time"`
	ActualTime    *float64             `json:"actual_time"`
	AIUsed        *bool                `json:"ai_used"`
	AITool        *string              `json:"ai_tool"`
	TimeSaved     *float64             `json:"time_saved"`
	Status        *models.TaskStatus   `json:"status"`
	DueDate       *string              `json:"due_date"`
	ClearDueDate  bool                 `json:"clear_due_date"`
	Priority      *models.TaskPriority `json:"priority"`
}

type CreateTimeEntryRequest struct {
	UserID     *uint64                `json:"user_id"`
	ProjectID  uint64                 `json:"project_id"`
	SubProject string                 `json:"sub_project"`
	TaskID     uint64                 `json:"task_id"`
	Date       string                 `json:"date" binding:"required"`
	TimeSpent  float64                `json:"time_spent" binding:"required"`
	AIUsed     bool                   `json:"ai_used"`
	AITool     string                 `json:"ai_tool"`
	TimeSaved  float64                `json:"time_saved"`
	Status     models.TimeEntryStatus `json:"status"`
	Notes      string                 `json:"notes"`
}

type UpdateTimeEntryRequest struct {
	ProjectID  *uint64                 `json:"project_id"`
	SubProject *string                 `json:"sub_project"`
	TaskID     *uint64                 `json:"task_id"`
	Date       *string                 `json:"date"`
	TimeSpent  *float64                `json:"time_spent"`
	AIUsed     *bool                   `json:"ai_used"`
	AITool     *string                 `json:"ai_tool"`
	TimeSaved  *float64                `json:"time_saved"`
	Status     *models.TimeEntryStatus `json:"status"`
	Notes      *string                 `json:"notes"`
}

// DepartmentRequest is shared by create and update.
type DepartmentRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

// AIToolRequest is shared by create and update.
type AIToolRequest struct {
	Name        *string             `json:"name"`
	Category    *string             `json:"category"`
	UsageCount  *int64              `json:"usage_count"`
	TimeSaved   *float64            `json:"time_saved"`
	Departments []string            `json:"departments"`
	Trend       *models.AIToolTrend `json:"trend"`
	Description *string             `json:"description"`
	URL         *string             `json:"url"`
}
