package repository

import (
	"context"

	"github.com/yukikurage/time-management-api/internal/database"
	"github.com/yukikurage/time-management-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project and its assignments in one transaction
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignments").Create(project).Error; err != nil {
			return err
		}
		return replaceAssignments(tx, project.ID, project.AssignedEmployees)
	})
}

// FindByID finds a project by ID with its assignments
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Assignments", orderAssignments).
		First(&project, id).Error; err != nil {
		return nil, err
	}
	project.AssignedEmployees = project.AssignedIDs()
	return &project, nil
}

// Update saves the project and replaces its assignment list
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignments").Save(project).Error; err != nil {
			return err
		}
		return replaceAssignments(tx, project.ID, project.AssignedEmployees)
	})
}

// Delete removes a project and its assignment rows. Tasks and time entries
// pointing at the project are kept.
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})

	if v := filter.Visibility; v != nil {
		query = r.applyVisibility(ctx, query, v)
	}

	query = query.Scopes(database.SearchAny(filter.Search, "projects.name", "projects.category"))
	if filter.Department != "" {
		query = query.Where("projects.department = ?", filter.Department)
	}
	if filter.Status != nil {
		query = query.Where("projects.status = ?", *filter.Status)
	}

	var projects []models.Project
	if err := query.
		Preload("Assignments", orderAssignments).
		Order("projects.id ASC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&projects).Error; err != nil {
		return nil, err
	}

	for i := range projects {
		projects[i].AssignedEmployees = projects[i].AssignedIDs()
	}
	return projects, nil
}

func (r *GormProjectRepository) applyVisibility(ctx context.Context, query *gorm.DB, v *ProjectVisibility) *gorm.DB {
	hasDept := v.Department != ""
	hasAssignees := len(v.AssigneeIDs) > 0

	var assigned *gorm.DB
	if hasAssignees {
		assigned = r.db.WithContext(ctx).Model(&models.ProjectAssignment{}).
			Select("1").
			Where("project_assignments.project_id = projects.id").
			Where("project_assignments.user_id IN ?", v.AssigneeIDs)
	}

	switch {
	case hasDept && hasAssignees:
		return query.Where("(projects.department = ? OR EXISTS (?))", v.Department, assigned)
	case hasDept:
		return query.Where("projects.department = ?", v.Department)
	case hasAssignees:
		return query.Where("EXISTS (?)", assigned)
	default:
		return query.Where("1 = 0")
	}
}

func orderAssignments(db *gorm.DB) *gorm.DB {
	return db.Order("user_id ASC")
}

func replaceAssignments(tx *gorm.DB, projectID uint64, userIDs []uint64) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectAssignment{}).Error; err != nil {
		return err
	}

	ids := uniqueIDs(userIDs)
	if len(ids) == 0 {
		return nil
	}

	assignments := make([]models.ProjectAssignment, len(ids))
	for i, userID := range ids {
		assignments[i] = models.ProjectAssignment{
			ProjectID: projectID,
			UserID:    userID,
		}
	}
	return tx.Create(&assignments).Error
}

// uniqueIDs removes duplicate values, keeping first-seen order
func uniqueIDs(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
