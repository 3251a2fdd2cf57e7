package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CatalogService reads the templates audits are started from.
type CatalogService interface {
	ListActiveTemplates(ctx context.Context, storeIDs []uuid.UUID) ([]dto.TemplateSummaryDTO, error)
	GetTemplateDetails(ctx context.Context, templateID uuid.UUID) (*dto.TemplateResponseDTO, error)
	// GetTemplateStructure loads a template with its sections and questions
	// in display order.
	GetTemplateStructure(ctx context.Context, templateID uuid.UUID) (*model.Template, error)
}

type catalogService struct {
	templateRepo repository.TemplateRepository
}

func NewCatalogService(templateRepo repository.TemplateRepository) CatalogService {
	return &catalogService{templateRepo: templateRepo}
}

func (s *catalogService) ListActiveTemplates(ctx context.Context, storeIDs []uuid.UUID) ([]dto.TemplateSummaryDTO, error) {
	templates, err := s.templateRepo.ListActive(ctx, storeIDs)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list active templates from repository")
		return nil, fmt.Errorf("error fetching templates: %w", err)
	}

	dtos := make([]dto.TemplateSummaryDTO, 0, len(templates))
	if err := copier.Copy(&dtos, &templates); err != nil {
		log.Error().Err(err).Msg("Failed to copy Template models to TemplateSummaryDTO")
		return nil, fmt.Errorf("error preparing template list: %w", err)
	}
	return dtos, nil
}

func (s *catalogService) GetTemplateDetails(ctx context.Context, templateID uuid.UUID) (*dto.TemplateResponseDTO, error) {
	tmpl, err := s.GetTemplateStructure(ctx, templateID)
	if err != nil {
		return nil, err
	}
	resp := toTemplateDTO(tmpl)
	return &resp, nil
}

func (s *catalogService) GetTemplateStructure(ctx context.Context, templateID uuid.UUID) (*model.Template, error) {
	tmpl, err := s.templateRepo.FindByIDWithStructure(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
		}
		log.Error().Err(err).Str("templateID", templateID.String()).Msg("Failed to get template structure from repository")
		return nil, fmt.Errorf("error fetching template %s: %w", templateID, err)
	}
	return tmpl, nil
}

func toTemplateDTO(t *model.Template) dto.TemplateResponseDTO {
	resp := dto.TemplateResponseDTO{
		ID:        t.ID,
		Name:      t.Name,
		Version:   t.Version,
		Active:    t.Active,
		Sections:  make([]dto.SectionDTO, 0, len(t.Sections)),
		CreatedAt: t.CreatedAt,
	}
	for _, sec := range t.Sections {
		sd := dto.SectionDTO{
			ID:        sec.ID,
			Title:     sec.Title,
			SortOrder: sec.SortOrder,
			Questions: make([]dto.QuestionDTO, 0, len(sec.Questions)),
		}
		for _, q := range sec.Questions {
			qd := dto.QuestionDTO{
				ID:         q.ID,
				Code:       q.Code,
				Prompt:     q.Prompt,
				AnswerType: string(q.AnswerType),
				MaxPoints:  q.MaxPoints,
				SortOrder:  q.SortOrder,
			}
			if q.AnswerType == model.AnswerTypeScore {
				scale := ResolveScale(q.MaxPoints)
				qd.Scale = &dto.ScoreScaleDTO{Pass: scale.Pass, Fair: scale.Fair, Fail: scale.Fail}
			}
			sd.Questions = append(sd.Questions, qd)
		}
		resp.Sections = append(resp.Sections, sd)
	}
	return resp
}
