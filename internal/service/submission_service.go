package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/metrics"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/repository"
	"github.com/lshigami/storeaudit/internal/storage"
	"github.com/rs/zerolog/log"
)

type submissionState int

const (
	stateSubmitting submissionState = iota + 1
	stateSubmitted
)

// SubmissionResult is the outcome of a submit that reached the submitted
// state. File is nil when no report could be produced; Warnings says why.
type SubmissionResult struct {
	Audit    *model.Audit
	File     *model.AuditFile
	Warnings []string
}

// SubmissionService closes an audit and exports its report.
type SubmissionService interface {
	// Submit saves the draft, marks the audit submitted and exports the
	// report. Failures before the audit is marked leave it editable and are
	// returned as errors. Export failures only add warnings.
	Submit(ctx context.Context, audit *model.Audit, tmpl *model.Template, draft *Draft) (*SubmissionResult, error)
}

type submissionService struct {
	synchronizer AnswerSynchronizer
	auditRepo    repository.AuditRepository
	fileRepo     repository.AuditFileRepository
	exporter     ExportClient
	narrator     ReportNarrator
	store        storage.ObjectStore
	metrics      *metrics.Recorder
	now          func() time.Time

	mu     sync.Mutex
	states map[uuid.UUID]submissionState
}

func NewSubmissionService(
	synchronizer AnswerSynchronizer,
	auditRepo repository.AuditRepository,
	fileRepo repository.AuditFileRepository,
	exporter ExportClient,
	narrator ReportNarrator,
	store storage.ObjectStore,
	recorder *metrics.Recorder,
) SubmissionService {
	return &submissionService{
		synchronizer: synchronizer,
		auditRepo:    auditRepo,
		fileRepo:     fileRepo,
		exporter:     exporter,
		narrator:     narrator,
		store:        store,
		metrics:      recorder,
		now:          time.Now,
		states:       make(map[uuid.UUID]submissionState),
	}
}

func (s *submissionService) Submit(ctx context.Context, audit *model.Audit, tmpl *model.Template, draft *Draft) (*SubmissionResult, error) {
	if err := s.begin(audit); err != nil {
		s.metrics.Submission("rejected")
		return nil, err
	}
	auditID := audit.ID

	if _, err := s.synchronizer.SaveAll(ctx, auditID, draft.Questions(), draft); err != nil {
		s.reset(auditID)
		s.metrics.Submission("save_failed")
		log.Error().Err(err).Str("auditID", auditID.String()).Msg("Submit: save failed, audit stays editable")
		return nil, fmt.Errorf("failed to save answers before submitting: %w", err)
	}

	at := s.now().UTC()
	marked, err := s.auditRepo.MarkSubmitted(ctx, auditID, at)
	if err != nil {
		s.reset(auditID)
		s.metrics.Submission("mark_failed")
		log.Error().Err(err).Str("auditID", auditID.String()).Msg("Submit: status update failed, audit stays editable")
		return nil, fmt.Errorf("failed to mark audit submitted: %w", err)
	}
	s.finish(auditID)
	if !marked {
		s.metrics.Submission("rejected")
		return nil, ErrAlreadySubmitted
	}
	audit.SubmittedAt = &at
	s.metrics.Submission("submitted")
	log.Info().Str("auditID", auditID.String()).Time("submittedAt", at).Msg("Audit submitted")

	result := &SubmissionResult{Audit: audit}
	result.File, result.Warnings = s.export(ctx, audit, tmpl, draft, at)
	return result, nil
}

// begin moves the audit into the submitting state. The first submit wins;
// every later one is rejected without touching the backend.
func (s *submissionService) begin(audit *model.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.states[audit.ID] {
	case stateSubmitting:
		return ErrSubmissionInProgress
	case stateSubmitted:
		return ErrAlreadySubmitted
	}
	if audit.Submitted() {
		s.states[audit.ID] = stateSubmitted
		return ErrAlreadySubmitted
	}
	s.states[audit.ID] = stateSubmitting
	return nil
}

func (s *submissionService) reset(auditID uuid.UUID) {
	s.mu.Lock()
	delete(s.states, auditID)
	s.mu.Unlock()
}

func (s *submissionService) finish(auditID uuid.UUID) {
	s.mu.Lock()
	s.states[auditID] = stateSubmitted
	s.mu.Unlock()
}

func (s *submissionService) export(ctx context.Context, audit *model.Audit, tmpl *model.Template, draft *Draft, at time.Time) (*model.AuditFile, []string) {
	var warnings []string
	logger := log.With().Str("auditID", audit.ID.String()).Logger()

	payload := BuildReportPayload(audit, tmpl, draft, at)
	if s.narrator != nil {
		summary, err := s.narrator.Summarize(ctx, payload)
		switch {
		case err == nil:
			payload.Summary = summary
		case errors.Is(err, ErrNarratorUnavailable):
		default:
			logger.Warn().Err(err).Msg("Submit: report summary failed")
			warnings = append(warnings, "The report summary could not be generated.")
		}
	}

	doc, err := s.exporter.Render(ctx, payload)
	if err != nil {
		logger.Error().Err(err).Msg("Submit: report export failed")
		s.metrics.Export("none", "failed")
		return nil, append(warnings, fmt.Sprintf("The audit was submitted but no report was produced: %v", err))
	}

	key := fmt.Sprintf("audits/%s/reports/%s.pdf", audit.ID, at.Format("20060102T150405Z"))
	link, err := materialize(ctx, s.store, key, doc)
	if err != nil {
		logger.Error().Err(err).Str("shape", doc.Shape()).Msg("Submit: report could not be stored")
		s.metrics.Export(doc.Shape(), "failed")
		return nil, append(warnings, fmt.Sprintf("The audit was submitted but the report could not be stored: %v", err))
	}

	file := &model.AuditFile{
		AuditID:   audit.ID,
		Name:      reportFileName(audit, tmpl, at),
		URL:       link,
		CreatedAt: at,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		logger.Error().Err(err).Msg("Submit: report file could not be registered")
		s.metrics.Export(doc.Shape(), "failed")
		return nil, append(warnings, fmt.Sprintf("The report was generated at %s but could not be added to the audit files: %v", link, err))
	}

	s.metrics.Export(doc.Shape(), "ok")
	logger.Info().Str("shape", doc.Shape()).Str("file", file.Name).Msg("Submit: report registered")
	return file, warnings
}

func reportFileName(audit *model.Audit, tmpl *model.Template, at time.Time) string {
	store := audit.Store.Name
	if store == "" {
		store = audit.StoreID.String()
	}
	return fmt.Sprintf("%s - %s - %s.pdf", tmpl.Name, store, at.Format("2006-01-02"))
}
