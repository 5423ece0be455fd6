package repository

import (
	"context"

	"github.com/yukikurage/time-management-api/internal/models"
	"gorm.io/gorm"
)

// GormAIToolRepository is a GORM implementation of AIToolRepository
type GormAIToolRepository struct {
	db *gorm.DB
}

// NewAIToolRepository creates a new AIToolRepository
func NewAIToolRepository(db *gorm.DB) AIToolRepository {
	return &GormAIToolRepository{db: db}
}

func (r *GormAIToolRepository) Create(ctx context.Context, tool *models.AITool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

func (r *GormAIToolRepository) FindByID(ctx context.Context, id uint64) (*models.AITool, error) {
	var tool models.AITool
	if err := r.db.WithContext(ctx).First(&tool, id).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *GormAIToolRepository) FindByName(ctx context.Context, name string) (*models.AITool, error) {
	var tool models.AITool
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tool).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

// List returns all tools, most used first
func (r *GormAIToolRepository) List(ctx context.Context) ([]models.AITool, error) {
	var tools []models.AITool
	if err := r.db.WithContext(ctx).Order("usage_count DESC, id ASC").Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

func (r *GormAIToolRepository) Update(ctx context.Context, tool *models.AITool) error {
	return r.db.WithContext(ctx).Save(tool).Error
}

func (r *GormAIToolRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.AITool{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
