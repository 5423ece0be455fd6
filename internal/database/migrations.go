package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by scoped listings. Single
// column indexes come from the model tags.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Hierarchy-scoped listings filter by owner then date/status
		{"time_entries", "idx_time_entries_user_date", "user_id, date"},
		{"tasks", "idx_tasks_assignee_status", "assigned_to, status"},
		{"tasks", "idx_tasks_project_sub_project", "project, sub_project"},

		// Project visibility: department OR assigned employee
		{"projects", "idx_projects_department_status", "department, status"},
		{"project_assignments", "idx_project_assignments_user_project", "user_id, project_id"},

		// Employee listing by department
		{"users", "idx_users_department_status", "department, status"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
