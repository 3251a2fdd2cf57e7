package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTemplateService interface {
	CreateTemplate(ctx context.Context, sess Session, req dto.TemplateCreateDTO) (*dto.TemplateResponseDTO, error)
	// RetireTemplate hides a template from the catalog. Audits already
	// started from it are unaffected.
	RetireTemplate(ctx context.Context, sess Session, templateID uuid.UUID) error
}

type adminTemplateService struct {
	templateRepo repository.TemplateRepository
}

func NewAdminTemplateService(templateRepo repository.TemplateRepository) AdminTemplateService {
	return &adminTemplateService{templateRepo: templateRepo}
}

func (s *adminTemplateService) CreateTemplate(ctx context.Context, sess Session, req dto.TemplateCreateDTO) (*dto.TemplateResponseDTO, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrValidation)
	}
	if req.Version < 1 {
		return nil, fmt.Errorf("%w: version must be at least 1, got %d", ErrValidation, req.Version)
	}
	if len(req.Sections) == 0 {
		return nil, fmt.Errorf("%w: a template needs at least one section", ErrValidation)
	}

	sectionOrders := make(map[int]bool)
	codes := make(map[string]bool)
	tmpl := model.Template{Name: strings.TrimSpace(req.Name), Version: req.Version, Active: true}

	for _, sDto := range req.Sections {
		if sectionOrders[sDto.SortOrder] {
			return nil, fmt.Errorf("%w: duplicate section sort_order %d", ErrValidation, sDto.SortOrder)
		}
		sectionOrders[sDto.SortOrder] = true
		if len(sDto.Questions) == 0 {
			return nil, fmt.Errorf("%w: section %q has no questions", ErrValidation, sDto.Title)
		}

		section := model.Section{Title: sDto.Title, SortOrder: sDto.SortOrder}
		questionOrders := make(map[int]bool)
		for _, qDto := range sDto.Questions {
			if questionOrders[qDto.SortOrder] {
				return nil, fmt.Errorf("%w: duplicate question sort_order %d in section %q", ErrValidation, qDto.SortOrder, sDto.Title)
			}
			questionOrders[qDto.SortOrder] = true

			code := strings.TrimSpace(qDto.Code)
			if code == "" {
				return nil, fmt.Errorf("%w: question code is required in section %q", ErrValidation, sDto.Title)
			}
			if codes[code] {
				return nil, fmt.Errorf("%w: duplicate question code %q", ErrValidation, code)
			}
			codes[code] = true

			answerType := model.AnswerType(qDto.AnswerType)
			if !answerType.Valid() {
				return nil, fmt.Errorf("%w: question %q: %q", ErrUnknownAnswerType, code, qDto.AnswerType)
			}
			if qDto.MaxPoints < 0 {
				return nil, fmt.Errorf("%w: question %q has negative max_points", ErrValidation, code)
			}
			if answerType == model.AnswerTypeScore && qDto.MaxPoints == 0 {
				return nil, fmt.Errorf("%w: score question %q needs max_points above 0", ErrValidation, code)
			}

			var question model.Question
			if err := copier.Copy(&question, &qDto); err != nil {
				return nil, fmt.Errorf("error preparing question %q: %w", code, err)
			}
			question.Code = code
			question.AnswerType = answerType
			section.Questions = append(section.Questions, question)
		}
		tmpl.Sections = append(tmpl.Sections, section)
	}
	for _, id := range req.StoreIDs {
		tmpl.Stores = append(tmpl.Stores, model.Store{ID: id})
	}

	if err := s.templateRepo.Create(ctx, &tmpl); err != nil {
		log.Error().Err(err).Str("name", tmpl.Name).Int("version", tmpl.Version).Msg("Failed to create template in database")
		return nil, fmt.Errorf("database error creating template: %w", err)
	}
	log.Info().Str("templateID", tmpl.ID.String()).Str("name", tmpl.Name).Int("version", tmpl.Version).Msg("Template created")

	created, err := s.templateRepo.FindByIDWithStructure(ctx, tmpl.ID)
	if err != nil {
		log.Error().Err(err).Str("templateID", tmpl.ID.String()).Msg("Failed to retrieve newly created template for response")
		resp := toTemplateDTO(&tmpl)
		return &resp, nil
	}
	resp := toTemplateDTO(created)
	return &resp, nil
}

func (s *adminTemplateService) RetireTemplate(ctx context.Context, sess Session, templateID uuid.UUID) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	if err := s.templateRepo.SetActive(ctx, templateID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
		}
		log.Error().Err(err).Str("templateID", templateID.String()).Msg("Failed to retire template")
		return fmt.Errorf("database error retiring template: %w", err)
	}
	log.Info().Str("templateID", templateID.String()).Msg("Template retired")
	return nil
}
