package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/session"
)

// AIToolService manages the catalogue of AI tools shown on the adoption page.
type AIToolService struct {
	toolRepo repository.AIToolRepository
}

// NewAIToolService creates a new AIToolService.
func NewAIToolService(toolRepo repository.AIToolRepository) *AIToolService {
	return &AIToolService{toolRepo: toolRepo}
}

// AIToolInput is used for both create and update. On update, nil fields are
// left alone and a nil Departments keeps the current list.
type AIToolInput struct {
	Name        *string
	Category    *string
	UsageCount  *int64
	TimeSaved   *float64
	Departments []string
	Trend       *models.AIToolTrend
	Description *string
	URL         *string
}

func (s *AIToolService) ListAITools(ctx context.Context, sess *session.Session) ([]models.AITool, error) {
	if _, err := sess.Require(); err != nil {
		return nil, err
	}
	tools, err := s.toolRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list AI tools: %w", err)
	}
	return tools, nil
}

func (s *AIToolService) CreateAITool(ctx context.Context, sess *session.Session, input AIToolInput) (*models.AITool, error) {
	if _, err := authorize(sess, access.CanManageSettings); err != nil {
		return nil, err
	}

	tool := &models.AITool{Trend: models.AIToolTrendStable, Departments: []string{}}
	if err := s.apply(ctx, tool, input); err != nil {
		return nil, err
	}
	if tool.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.toolRepo.Create(ctx, tool); err != nil {
		return nil, fmt.Errorf("failed to create AI tool: %w", err)
	}
	return tool, nil
}

func (s *AIToolService) UpdateAITool(ctx context.Context, sess *session.Session, id uint64, input AIToolInput) (*models.AITool, error) {
	if _, err := authorize(sess, access.CanManageSettings); err != nil {
		return nil, err
	}

	tool, err := s.toolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrAIToolNotFound)
	}
	if err := s.apply(ctx, tool, input); err != nil {
		return nil, err
	}

	if err := s.toolRepo.Update(ctx, tool); err != nil {
		return nil, fmt.Errorf("failed to update AI tool: %w", err)
	}
	return tool, nil
}

func (s *AIToolService) DeleteAITool(ctx context.Context, sess *session.Session, id uint64) error {
	if _, err := authorize(sess, access.CanManageSettings); err != nil {
		return err
	}
	if err := s.toolRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrAIToolNotFound)
	}
	return nil
}

func (s *AIToolService) apply(ctx context.Context, tool *models.AITool, input AIToolInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return ErrNameRequired
		}
		existing, err := s.toolRepo.FindByName(ctx, name)
		switch {
		case err == nil && existing.ID != tool.ID:
			return ErrAIToolNameTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check AI tool name: %w", err)
		}
		tool.Name = name
	}
	if input.Category != nil {
		tool.Category = strings.TrimSpace(*input.Category)
	}
	if input.UsageCount != nil {
		if *input.UsageCount < 0 {
			return invalid("usage count cannot be negative")
		}
		tool.UsageCount = *input.UsageCount
	}
	if input.TimeSaved != nil {
		if err := validateHours(*input.TimeSaved); err != nil {
			return err
		}
		tool.TimeSaved = *input.TimeSaved
	}
	if input.Departments != nil {
		tool.Departments = cleanNames(input.Departments)
	}
	if input.Trend != nil {
		if !input.Trend.Valid() {
			return invalid("unknown trend %q", *input.Trend)
		}
		tool.Trend = *input.Trend
	}
	if input.Description != nil {
		tool.Description = *input.Description
	}
	if input.URL != nil {
		tool.URL = strings.TrimSpace(*input.URL)
	}
	return nil
}
