package models

import "time"

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "Not Started"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusNotStarted, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null;index" json:"name"`
	Category    string        `gorm:"type:varchar(255)" json:"category"`
	Department  string        `gorm:"type:varchar(255);index" json:"department"`
	SubProjects []string      `gorm:"serializer:json;type:text" json:"sub_projects"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'Not Started'" json:"status"`
	Progress    int           `gorm:"not null;default:0" json:"progress"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID" json:"-"`

	// AssignedEmployees is filled from Assignments on read and consumed on write.
	AssignedEmployees []uint64 `gorm:"-" json:"assigned_employees"`
}

// AssignedIDs returns the employee ids from the preloaded assignments.
func (p *Project) AssignedIDs() []uint64 {
	ids := make([]uint64, len(p.Assignments))
	for i, a := range p.Assignments {
		ids[i] = a.UserID
	}
	return ids
}
