package repository

import (
	"context"

	"github.com/yukikurage/time-management-api/internal/database"
	"github.com/yukikurage/time-management-api/internal/models"
	"gorm.io/gorm"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

func (r *GormTimeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormTimeEntryRepository) FindByID(ctx context.Context, id uint64) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormTimeEntryRepository) Update(ctx context.Context, entry *models.TimeEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *GormTimeEntryRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.TimeEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List retrieves time entries with filtering and pagination. The owner scope
// and the explicit employee filter are both applied.
func (r *GormTimeEntryRepository) List(ctx context.Context, filter TimeEntryFilter) ([]models.TimeEntry, error) {
	query := filter.UserScope.apply(r.db.WithContext(ctx).Model(&models.TimeEntry{}), "time_entries.user_id")

	query = query.Scopes(database.SearchAny(filter.Search, "time_entries.project", "time_entries.task"))
	if filter.EmployeeID != nil {
		query = query.Where("time_entries.user_id = ?", *filter.EmployeeID)
	}
	if filter.ProjectID != nil {
		query = query.Where("time_entries.project_id = ?", *filter.ProjectID)
	}
	if filter.DateFrom != nil {
		query = query.Where("time_entries.date >= ?", *filter.DateFrom)
	}
	if filter.DateBefore != nil {
		query = query.Where("time_entries.date < ?", *filter.DateBefore)
	}

	var entries []models.TimeEntry
	if err := query.
		Order("time_entries.date ASC, time_entries.id ASC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
