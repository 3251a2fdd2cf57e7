package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/metrics"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerSynchronizer flushes a draft into the answers table.
type AnswerSynchronizer interface {
	// SaveAll upserts one row per question with a non-empty draft entry and
	// returns the number of rows written. A call made while another save for
	// the same audit is pending fails with ErrSaveInProgress.
	SaveAll(ctx context.Context, auditID uuid.UUID, questions []model.Question, draft *Draft) (int, error)
}

type answerSynchronizer struct {
	answerRepo repository.AnswerRepository
	metrics    *metrics.Recorder

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewAnswerSynchronizer(answerRepo repository.AnswerRepository, recorder *metrics.Recorder) AnswerSynchronizer {
	return &answerSynchronizer{
		answerRepo: answerRepo,
		metrics:    recorder,
		inFlight:   make(map[uuid.UUID]struct{}),
	}
}

func (s *answerSynchronizer) SaveAll(ctx context.Context, auditID uuid.UUID, questions []model.Question, draft *Draft) (int, error) {
	if !s.acquire(auditID) {
		log.Warn().Str("auditID", auditID.String()).Msg("SaveAll: save already in flight, ignoring")
		return 0, ErrSaveInProgress
	}
	defer s.release(auditID)

	saved := draft.snapshot()
	rows, err := buildAnswerRows(auditID, questions, saved)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		draft.markSaved(saved)
		return 0, nil
	}

	if err := s.answerRepo.UpsertBatch(ctx, rows); err != nil {
		log.Error().Err(err).Str("auditID", auditID.String()).Int("rows", len(rows)).Msg("SaveAll: upsert failed")
		return 0, err
	}
	draft.markSaved(saved)
	s.metrics.AnswersUpserted(len(rows))

	log.Info().Str("auditID", auditID.String()).Int("rows", len(rows)).Msg("SaveAll: answers saved")
	return len(rows), nil
}

func (s *answerSynchronizer) acquire(auditID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[auditID]; busy {
		return false
	}
	s.inFlight[auditID] = struct{}{}
	return true
}

func (s *answerSynchronizer) release(auditID uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, auditID)
	s.mu.Unlock()
}

// buildAnswerRows shapes the upsert rows in question order.
func buildAnswerRows(auditID uuid.UUID, questions []model.Question, entries map[uuid.UUID]Entry) ([]model.Answer, error) {
	rows := make([]model.Answer, 0, len(entries))
	for _, q := range questions {
		e, ok := entries[q.ID]
		if !ok || e.IsEmpty() {
			continue
		}
		shape, err := shapeFor(q.AnswerType)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.Code, err)
		}
		row := model.Answer{AuditID: auditID, QuestionID: q.ID}
		shape.toAnswer(e, &row)
		rows = append(rows, row)
	}
	return rows, nil
}
