package repository

import (
	"context"
	"time"

	"github.com/yukikurage/time-management-api/internal/models"
	"gorm.io/gorm"
)

// IDScope restricts a column to a set of ids. The zero value is unrestricted;
// a restricted scope with no ids matches nothing.
type IDScope struct {
	Restricted bool
	IDs        []uint64
}

// Only returns a scope restricted to ids.
func Only(ids []uint64) IDScope {
	return IDScope{Restricted: true, IDs: ids}
}

func (s IDScope) apply(db *gorm.DB, column string) *gorm.DB {
	if !s.Restricted {
		return db
	}
	if len(s.IDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(column+" IN ?", s.IDs)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Scope      IDScope
	Search     string
	Department string
	Status     *models.EmployeeStatus
	Page       int
	PageSize   int
}

// ProjectVisibility limits projects to a department OR to projects with at
// least one assignee in AssigneeIDs.
type ProjectVisibility struct {
	Department  string
	AssigneeIDs []uint64
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Visibility *ProjectVisibility
	Search     string
	Department string
	Status     *models.ProjectStatus
	Page       int
	PageSize   int
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssigneeScope IDScope
	Search        string
	Project       string
	SubProject    string
	Status        *models.TaskStatus
	Page          int
	PageSize      int
}

// TimeEntryFilter holds filtering options for listing time entries.
// DateFrom is inclusive, DateBefore exclusive.
type TimeEntryFilter struct {
	UserScope  IDScope
	Search     string
	EmployeeID *uint64
	ProjectID  *uint64
	DateFrom   *time.Time
	DateBefore *time.Time
	Page       int
	PageSize   int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves every field of user
	Update(ctx context.Context, user *models.User) error

	// Delete hard deletes a user. Records referencing it are left alone.
	Delete(ctx context.Context, id uint64) error

	// List retrieves users with filtering and pagination
	List(ctx context.Context, filter UserFilter) ([]models.User, error)

	// ListAll returns every user ordered by id
	ListAll(ctx context.Context) ([]models.User, error)

	// ListDirectReports returns users whose manager is one of managerIDs
	ListDirectReports(ctx context.Context, managerIDs []uint64) ([]models.User, error)

	// FindNamesByIDs maps each existing id to the user's display name
	FindNamesByIDs(ctx context.Context, ids []uint64) (map[uint64]string, error)
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	FindByID(ctx context.Context, id uint64) (*models.Department, error)
	FindByName(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Update(ctx context.Context, dept *models.Department) error
	Delete(ctx context.Context, id uint64) error
}

// ProjectRepository defines the interface for project data access.
// AssignedEmployees on the model is written on Create/Update and filled on reads.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint64) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uint64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)
}

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	FindByID(ctx context.Context, id uint64) (*models.TimeEntry, error)
	Update(ctx context.Context, entry *models.TimeEntry) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter TimeEntryFilter) ([]models.TimeEntry, error)
}

// AIToolRepository defines the interface for AI tool data access
type AIToolRepository interface {
	Create(ctx context.Context, tool *models.AITool) error
	FindByID(ctx context.Context, id uint64) (*models.AITool, error)
	FindByName(ctx context.Context, name string) (*models.AITool, error)
	List(ctx context.Context) ([]models.AITool, error)
	Update(ctx context.Context, tool *models.AITool) error
	Delete(ctx context.Context, id uint64) error
}
