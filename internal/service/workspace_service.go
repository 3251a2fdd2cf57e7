package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/storeaudit/config"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/repository"
	"github.com/lshigami/storeaudit/internal/storage"
	"github.com/rs/zerolog/log"
)

// MaxPhotoBytes caps a single photo answer upload.
const MaxPhotoBytes = 10 << 20

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp", "image/heic", "image/heif", "image/gif"}

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

const (
	defaultDraftIdleTTL      = 30 * time.Minute
	defaultDraftAbandonAfter = 24 * time.Hour
	draftSweepInterval       = time.Minute
)

// WorkspaceService is the auditor's view of an open audit: its draft, saves,
// photo uploads and submission.
type WorkspaceService interface {
	Start(ctx context.Context, sess Session, req dto.AuditCreateDTO) (*dto.AuditCreatedDTO, error)
	GetAudit(ctx context.Context, sess Session, auditID uuid.UUID) (*dto.AuditResponseDTO, error)
	// GetDraft returns the draft. With refresh set, persisted answers are
	// loaded into it first according to the reseed policy.
	GetDraft(ctx context.Context, sess Session, auditID uuid.UUID, refresh bool) (*dto.DraftResponseDTO, error)
	SetAnswer(ctx context.Context, sess Session, auditID, questionID uuid.UUID, patch dto.AnswerPatchDTO) (*dto.DraftEntryDTO, error)
	AttachPhoto(ctx context.Context, sess Session, auditID, questionID uuid.UUID, data []byte) (*dto.DraftEntryDTO, error)
	Save(ctx context.Context, sess Session, auditID uuid.UUID) (*dto.SaveResponseDTO, error)
	Submit(ctx context.Context, sess Session, auditID uuid.UUID) (*dto.SubmitResponseDTO, error)
	ListFiles(ctx context.Context, sess Session, auditID uuid.UUID) ([]dto.AuditFileDTO, error)
}

type workspaceKey struct {
	userID  uuid.UUID
	auditID uuid.UUID
}

type workspace struct {
	audit *model.Audit
	tmpl  *model.Template
	draft *Draft
	// section title per question, for display
	sections map[uuid.UUID]string
	lastUsed time.Time
}

type workspaceService struct {
	sessions     AuditSessionService
	catalog      CatalogService
	synchronizer AnswerSynchronizer
	submissions  SubmissionService
	answerRepo   repository.AnswerRepository
	fileRepo     repository.AuditFileRepository
	store        storage.ObjectStore
	policy       ReseedPolicy
	// Clean drafts idle for idleTTL are dropped; they rebuild from the saved
	// answers. Drafts with unsaved edits are kept until abandonAfter.
	idleTTL      time.Duration
	abandonAfter time.Duration
	now          func() time.Time

	mu        sync.Mutex
	drafts    map[workspaceKey]*workspace
	lastSweep time.Time
}

func NewWorkspaceService(
	cfg *config.Config,
	sessions AuditSessionService,
	catalog CatalogService,
	synchronizer AnswerSynchronizer,
	submissions SubmissionService,
	answerRepo repository.AnswerRepository,
	fileRepo repository.AuditFileRepository,
	store storage.ObjectStore,
) (WorkspaceService, error) {
	policy, err := ParseReseedPolicy(cfg.Draft.ReseedPolicy)
	if err != nil {
		return nil, err
	}
	return &workspaceService{
		sessions:     sessions,
		catalog:      catalog,
		synchronizer: synchronizer,
		submissions:  submissions,
		answerRepo:   answerRepo,
		fileRepo:     fileRepo,
		store:        store,
		policy:       policy,
		idleTTL:      durationOr(cfg.Draft.IdleTTL, defaultDraftIdleTTL),
		abandonAfter: durationOr(cfg.Draft.AbandonAfter, defaultDraftAbandonAfter),
		now:          time.Now,
		drafts:       make(map[workspaceKey]*workspace),
	}, nil
}

func (s *workspaceService) Start(ctx context.Context, sess Session, req dto.AuditCreateDTO) (*dto.AuditCreatedDTO, error) {
	id, err := s.sessions.Create(ctx, sess, req.StoreID, req.TemplateID)
	if err != nil {
		return nil, err
	}
	return &dto.AuditCreatedDTO{ID: id}, nil
}

func (s *workspaceService) GetAudit(ctx context.Context, sess Session, auditID uuid.UUID) (*dto.AuditResponseDTO, error) {
	audit, err := s.loadAuthorized(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	resp := toAuditDTO(audit)
	return &resp, nil
}

func (s *workspaceService) GetDraft(ctx context.Context, sess Session, auditID uuid.UUID, refresh bool) (*dto.DraftResponseDTO, error) {
	ws, err := s.open(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	if refresh {
		answers, err := s.answerRepo.FindByAudit(ctx, auditID)
		if err != nil {
			log.Error().Err(err).Str("auditID", auditID.String()).Msg("GetDraft: failed to refresh answers")
			return nil, fmt.Errorf("error fetching answers: %w", err)
		}
		ws.draft.Reseed(answers)
	}

	items := ws.draft.Items()
	resp := &dto.DraftResponseDTO{
		AuditID: auditID,
		Status:  auditStatus(ws.audit),
		Dirty:   ws.draft.Dirty(),
		Entries: make([]dto.DraftEntryDTO, 0, len(items)),
	}
	for _, it := range items {
		resp.Entries = append(resp.Entries, ws.entryDTO(it.Question, it.Entry))
	}
	tally := TallyScore(items)
	resp.Score = dto.ScoreDTO{Earned: tally.Earned, Possible: tally.Possible, Percent: tally.Percent, Excluded: tally.Excluded}
	return resp, nil
}

func (s *workspaceService) SetAnswer(ctx context.Context, sess Session, auditID, questionID uuid.UUID, patch dto.AnswerPatchDTO) (*dto.DraftEntryDTO, error) {
	ws, err := s.openEditable(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	entry, err := ws.draft.SetValue(questionID, Patch{
		ValueBool: patch.ValueBool,
		ValueNum:  patch.ValueNum,
		ValueText: patch.ValueText,
		Notes:     patch.Notes,
	})
	if err != nil {
		return nil, err
	}
	resp := ws.entryDTO(ws.draft.byID[questionID], entry)
	return &resp, nil
}

func (s *workspaceService) AttachPhoto(ctx context.Context, sess Session, auditID, questionID uuid.UUID, data []byte) (*dto.DraftEntryDTO, error) {
	ws, err := s.openEditable(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	q, ok := ws.draft.byID[questionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if q.AnswerType != model.AnswerTypePhoto {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPhotoQuestion, q.Code, q.AnswerType)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: photo is empty", ErrValidation)
	}
	if len(data) > MaxPhotoBytes {
		return nil, fmt.Errorf("%w: photo exceeds %d bytes", ErrValidation, MaxPhotoBytes)
	}
	mt := mimetype.Detect(data)
	if !isAllowedPhoto(mt) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
	}

	key := fmt.Sprintf("audits/%s/photos/%s/%s%s", auditID, questionID, uuid.New(), mt.Extension())
	obj, err := s.store.Put(ctx, key, mt.String(), data)
	if err != nil {
		return nil, err
	}
	link, err := s.store.URL(ctx, obj)
	if err != nil {
		return nil, err
	}

	entry, err := ws.draft.SetValue(questionID, Patch{ValueText: &link})
	if err != nil {
		return nil, err
	}
	log.Info().Str("auditID", auditID.String()).Str("question", q.Code).Str("key", key).Msg("Photo attached")
	resp := ws.entryDTO(q, entry)
	return &resp, nil
}

func (s *workspaceService) Save(ctx context.Context, sess Session, auditID uuid.UUID) (*dto.SaveResponseDTO, error) {
	ws, err := s.openEditable(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	n, err := s.synchronizer.SaveAll(ctx, auditID, ws.draft.Questions(), ws.draft)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.FindByAudit(ctx, auditID)
	if err != nil {
		log.Warn().Err(err).Str("auditID", auditID.String()).Msg("Save: answers saved but reload failed")
	} else {
		ws.draft.Reseed(answers)
	}
	return &dto.SaveResponseDTO{AuditID: auditID, Saved: n}, nil
}

func (s *workspaceService) Submit(ctx context.Context, sess Session, auditID uuid.UUID) (*dto.SubmitResponseDTO, error) {
	ws, err := s.open(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	result, err := s.submissions.Submit(ctx, ws.audit, ws.tmpl, ws.draft)
	if err != nil {
		return nil, err
	}
	s.evictAudit(auditID)

	resp := &dto.SubmitResponseDTO{
		Audit:    toAuditDTO(result.Audit),
		Warnings: result.Warnings,
	}
	if result.File != nil {
		var file dto.AuditFileDTO
		if err := copier.Copy(&file, result.File); err != nil {
			return nil, fmt.Errorf("error preparing submit response: %w", err)
		}
		resp.File = &file
	}
	return resp, nil
}

func (s *workspaceService) ListFiles(ctx context.Context, sess Session, auditID uuid.UUID) ([]dto.AuditFileDTO, error) {
	if _, err := s.loadAuthorized(ctx, sess, auditID); err != nil {
		return nil, err
	}
	files, err := s.fileRepo.ListByAudit(ctx, auditID)
	if err != nil {
		log.Error().Err(err).Str("auditID", auditID.String()).Msg("Failed to list audit files")
		return nil, fmt.Errorf("error fetching audit files: %w", err)
	}
	dtos := make([]dto.AuditFileDTO, 0, len(files))
	if err := copier.Copy(&dtos, &files); err != nil {
		return nil, fmt.Errorf("error preparing file list: %w", err)
	}
	return dtos, nil
}

// open returns the caller's cached workspace for the audit, building it from
// the template and persisted answers on first use.
func (s *workspaceService) open(ctx context.Context, sess Session, auditID uuid.UUID) (*workspace, error) {
	key := workspaceKey{userID: sess.UserID, auditID: auditID}
	s.mu.Lock()
	s.sweepLocked()
	ws, ok := s.drafts[key]
	if ok {
		ws.lastUsed = s.now()
	}
	s.mu.Unlock()
	if ok {
		return ws, nil
	}

	audit, err := s.loadAuthorized(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.catalog.GetTemplateStructure(ctx, audit.TemplateID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.FindByAudit(ctx, auditID)
	if err != nil {
		log.Error().Err(err).Str("auditID", auditID.String()).Msg("Failed to load answers")
		return nil, fmt.Errorf("error fetching answers: %w", err)
	}
	draft, err := NewDraft(auditID, tmpl.OrderedQuestions(), answers, s.policy)
	if err != nil {
		return nil, err
	}

	ws = &workspace{audit: audit, tmpl: tmpl, draft: draft, sections: make(map[uuid.UUID]string), lastUsed: s.now()}
	for _, sec := range tmpl.Sections {
		for _, q := range sec.Questions {
			ws.sections[q.ID] = sec.Title
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.drafts[key]; ok {
		return existing, nil
	}
	s.drafts[key] = ws
	return ws, nil
}

func (s *workspaceService) openEditable(ctx context.Context, sess Session, auditID uuid.UUID) (*workspace, error) {
	ws, err := s.open(ctx, sess, auditID)
	if err != nil {
		return nil, err
	}
	if ws.audit.Submitted() {
		return nil, ErrAuditClosed
	}
	// The cached audit may predate a submit made by another user or process.
	current, err := s.sessions.Load(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if current.Submitted() {
		log.Info().Str("auditID", auditID.String()).Str("userID", sess.UserID.String()).Msg("Edit rejected, audit was submitted elsewhere")
		s.evictAudit(auditID)
		return nil, ErrAuditClosed
	}
	return ws, nil
}

// evictAudit drops every user's workspace for the audit.
func (s *workspaceService) evictAudit(auditID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.drafts {
		if key.auditID == auditID {
			delete(s.drafts, key)
		}
	}
}

// sweepLocked drops idle workspaces. Callers hold s.mu.
func (s *workspaceService) sweepLocked() {
	now := s.now()
	if now.Sub(s.lastSweep) < draftSweepInterval {
		return
	}
	s.lastSweep = now
	for key, ws := range s.drafts {
		idle := now.Sub(ws.lastUsed)
		switch {
		case idle >= s.abandonAfter:
			if ws.draft.Dirty() {
				log.Warn().Str("auditID", key.auditID.String()).Str("userID", key.userID.String()).Dur("idle", idle).Msg("Dropping abandoned draft with unsaved edits")
			}
			delete(s.drafts, key)
		case idle >= s.idleTTL && !ws.draft.Dirty():
			delete(s.drafts, key)
		}
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

// loadAuthorized loads an audit the caller may see. Auditors only see their
// own audits; managers and admins see all.
func (s *workspaceService) loadAuthorized(ctx context.Context, sess Session, auditID uuid.UUID) (*model.Audit, error) {
	if !sess.valid() {
		return nil, fmt.Errorf("%w: no authenticated user", ErrForbidden)
	}
	audit, err := s.sessions.Load(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if sess.Role != RoleManager && sess.Role != RoleAdmin && audit.AuditorID != sess.UserID {
		return nil, fmt.Errorf("%w: audit belongs to another auditor", ErrForbidden)
	}
	return audit, nil
}

func (ws *workspace) entryDTO(q model.Question, e Entry) dto.DraftEntryDTO {
	return dto.DraftEntryDTO{
		QuestionID: q.ID,
		Section:    ws.sections[q.ID],
		Code:       q.Code,
		Prompt:     q.Prompt,
		AnswerType: string(q.AnswerType),
		MaxPoints:  q.MaxPoints,
		ValueBool:  e.ValueBool,
		ValueNum:   e.ValueNum,
		ValueText:  e.ValueText,
		Notes:      e.Notes,
	}
}

func auditStatus(a *model.Audit) string {
	if a.Submitted() {
		return StatusSubmitted
	}
	return StatusDraft
}

func toAuditDTO(a *model.Audit) dto.AuditResponseDTO {
	return dto.AuditResponseDTO{
		ID:              a.ID,
		StoreID:         a.StoreID,
		StoreName:       a.Store.Name,
		TemplateID:      a.TemplateID,
		TemplateName:    a.Template.Name,
		TemplateVersion: a.Template.Version,
		AuditorID:       a.AuditorID,
		Status:          auditStatus(a),
		StartedAt:       a.StartedAt,
		SubmittedAt:     a.SubmittedAt,
	}
}

func isAllowedPhoto(mt *mimetype.MIME) bool {
	for _, t := range allowedPhotoTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}
