package models

// AllModels lists every table, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Department{},
		&Project{},
		&ProjectAssignment{},
		&Task{},
		&TimeEntry{},
		&AITool{},
	}
}
