package models

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
	EmployeeStatusOnLeave  EmployeeStatus = "on_leave"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	}
	return false
}

// User is both a login identity and an employee record. ManagerID references
// another user without owning it; nothing stops the graph from containing a
// cycle, so readers of the manager chain must guard against one.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Designation  string         `gorm:"type:varchar(255)" json:"designation"`
	Status       EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Avatar       string         `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	Department   string         `gorm:"type:varchar(255);index" json:"department,omitempty"`
	ManagerID    *uint64        `gorm:"index" json:"manager_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
