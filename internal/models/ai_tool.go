package models

import "time"

type AIToolTrend string

const (
	AIToolTrendIncreasing AIToolTrend = "increasing"
	AIToolTrendStable     AIToolTrend = "stable"
	AIToolTrendDecreasing AIToolTrend = "decreasing"
)

func (t AIToolTrend) Valid() bool {
	switch t {
	case AIToolTrendIncreasing, AIToolTrendStable, AIToolTrendDecreasing:
		return true
	}
	return false
}

type AITool struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	Name        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Category    string      `gorm:"type:varchar(255)" json:"category"`
	UsageCount  int64       `gorm:"not null;default:0" json:"usage_count"`
	TimeSaved   float64     `gorm:"not null;default:0" json:"time_saved"`
	Departments []string    `gorm:"serializer:json;type:text" json:"departments"`
	Trend       AIToolTrend `gorm:"type:varchar(20);not null;default:'stable'" json:"trend"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	URL         string      `gorm:"type:varchar(255)" json:"url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
