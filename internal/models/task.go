package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityUrgent TaskPriority = "Urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task status is a flat label: any value may follow any other.
type Task struct {
	ID            uint64       `gorm:"primarykey" json:"id"`
	Name          string       `gorm:"type:varchar(255);not null" json:"name"`
	Description   string       `gorm:"type:text" json:"description"`
	ProjectID     uint64       `gorm:"index" json:"project_id"`
	Project       string       `gorm:"type:varchar(255)" json:"project"`
	SubProject    string       `gorm:"type:varchar(255)" json:"sub_project"`
	AssignedTo    *uint64      `gorm:"index" json:"assigned_to"`
	EstimatedTime float64      `gorm:"not null;default:0" json:"estimated_time"`
	ActualTime    float64      `gorm:"not null;default:0" json:"actual_time"`
	AIUsed        bool         `gorm:"not null;default:false" json:"ai_used"`
	AITool        string       `gorm:"type:varchar(255)" json:"ai_tool,omitempty"`
	TimeSaved     float64      `gorm:"not null;default:0" json:"time_saved"`
	Status        TaskStatus   `gorm:"type:varchar(20);not null;default:'To Do'" json:"status"`
	DueDate       *time.Time   `json:"due_date"`
	Priority      TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
