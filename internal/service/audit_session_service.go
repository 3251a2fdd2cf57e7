package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/metrics"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AuditSessionService starts audits and loads them back by id.
type AuditSessionService interface {
	Create(ctx context.Context, sess Session, storeID, templateID uuid.UUID) (uuid.UUID, error)
	// Load returns the audit with its store and template. A missing audit is
	// ErrAuditNotFound.
	Load(ctx context.Context, auditID uuid.UUID) (*model.Audit, error)
}

type auditSessionService struct {
	auditRepo    repository.AuditRepository
	templateRepo repository.TemplateRepository
	metrics      *metrics.Recorder
	now          func() time.Time
}

func NewAuditSessionService(
	auditRepo repository.AuditRepository,
	templateRepo repository.TemplateRepository,
	recorder *metrics.Recorder,
) AuditSessionService {
	return &auditSessionService{
		auditRepo:    auditRepo,
		templateRepo: templateRepo,
		metrics:      recorder,
		now:          time.Now,
	}
}

func (s *auditSessionService) Create(ctx context.Context, sess Session, storeID, templateID uuid.UUID) (uuid.UUID, error) {
	if !sess.valid() {
		return uuid.Nil, fmt.Errorf("%w: no authenticated user", ErrForbidden)
	}
	if storeID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: store is required", ErrValidation)
	}
	if templateID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: template is required", ErrValidation)
	}

	tmpl, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
		}
		return uuid.Nil, fmt.Errorf("error fetching template %s: %w", templateID, err)
	}
	if !tmpl.Active {
		return uuid.Nil, fmt.Errorf("%w: template %q is retired", ErrValidation, tmpl.Name)
	}

	audit := model.Audit{
		StoreID:    storeID,
		TemplateID: templateID,
		AuditorID:  sess.UserID,
		StartedAt:  s.now().UTC(),
	}
	if err := s.auditRepo.Create(ctx, &audit); err != nil {
		log.Error().Err(err).Str("storeID", storeID.String()).Str("templateID", templateID.String()).Msg("Failed to create audit")
		return uuid.Nil, fmt.Errorf("failed to start audit: %w", err)
	}
	s.metrics.AuditCreated()

	log.Info().Str("auditID", audit.ID.String()).Str("auditorID", sess.UserID.String()).Msg("Audit started")
	return audit.ID, nil
}

func (s *auditSessionService) Load(ctx context.Context, auditID uuid.UUID) (*model.Audit, error) {
	audit, err := s.auditRepo.FindByIDWithDetails(ctx, auditID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAuditNotFound, auditID)
		}
		log.Error().Err(err).Str("auditID", auditID.String()).Msg("Failed to load audit")
		return nil, fmt.Errorf("error fetching audit %s: %w", auditID, err)
	}
	return audit, nil
}
