package models

import "time"

type TimeEntryStatus string

const (
	TimeEntryStatusInProgress TimeEntryStatus = "In Progress"
	TimeEntryStatusCompleted  TimeEntryStatus = "Completed"
)

func (s TimeEntryStatus) Valid() bool {
	return s == TimeEntryStatusInProgress || s == TimeEntryStatusCompleted
}

// TimeEntry carries denormalized project, task and employee names next to
// their ids. The names are display copies, not the source of truth.
type TimeEntry struct {
	ID         uint64          `gorm:"primarykey" json:"id"`
	UserID     uint64          `gorm:"not null;index" json:"user_id"`
	Employee   string          `gorm:"type:varchar(255)" json:"employee"`
	ProjectID  uint64          `gorm:"index" json:"project_id"`
	Project    string          `gorm:"type:varchar(255)" json:"project"`
	SubProject string          `gorm:"type:varchar(255)" json:"sub_project"`
	TaskID     uint64          `gorm:"index" json:"task_id"`
	Task       string          `gorm:"type:varchar(255)" json:"task"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	TimeSpent  float64         `gorm:"not null;default:0" json:"time_spent"`
	AIUsed     bool            `gorm:"not null;default:false" json:"ai_used"`
	AITool     string          `gorm:"type:varchar(255)" json:"ai_tool,omitempty"`
	TimeSaved  float64         `gorm:"not null;default:0" json:"time_saved"`
	Status     TimeEntryStatus `gorm:"type:varchar(20);not null;default:'In Progress'" json:"status"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
