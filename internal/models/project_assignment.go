package models

import "time"

// ProjectAssignment links an employee to a project. UserID is not a foreign
// key: deleting the user leaves the row behind.
type ProjectAssignment struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
