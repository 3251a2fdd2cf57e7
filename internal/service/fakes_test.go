package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/storage"
	"gorm.io/gorm"
)

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[uuid.UUID]*model.Template
	err       error
}

func newFakeTemplateRepo(templates ...*model.Template) *fakeTemplateRepo {
	r := &fakeTemplateRepo{templates: make(map[uuid.UUID]*model.Template)}
	for _, t := range templates {
		r.templates[t.ID] = t
	}
	return r
}

func (r *fakeTemplateRepo) ListActive(_ context.Context, _ []uuid.UUID) ([]model.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Template
	for _, t := range r.templates {
		if t.Active {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTemplateRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	return r.FindByIDWithStructure(ctx, id)
}

func (r *fakeTemplateRepo) FindByIDWithStructure(_ context.Context, id uuid.UUID) (*model.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.templates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *model.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	t.ID = uuid.New()
	for i := range t.Sections {
		t.Sections[i].ID = uuid.New()
		t.Sections[i].TemplateID = t.ID
		for j := range t.Sections[i].Questions {
			t.Sections[i].Questions[j].ID = uuid.New()
			t.Sections[i].Questions[j].SectionID = t.Sections[i].ID
		}
	}
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Active = active
	return nil
}

type fakeAuditRepo struct {
	mu        sync.Mutex
	audits    map[uuid.UUID]model.Audit
	stores    map[uuid.UUID]model.Store
	templates *fakeTemplateRepo
	createErr error
	markErr   error
	markCalls int
}

func newFakeAuditRepo(templates *fakeTemplateRepo, stores ...model.Store) *fakeAuditRepo {
	r := &fakeAuditRepo{
		audits:    make(map[uuid.UUID]model.Audit),
		stores:    make(map[uuid.UUID]model.Store),
		templates: templates,
	}
	for _, s := range stores {
		r.stores[s.ID] = s
	}
	return r
}

func (r *fakeAuditRepo) Create(_ context.Context, a *model.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	a.ID = uuid.New()
	r.audits[a.ID] = *a
	return nil
}

func (r *fakeAuditRepo) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*model.Audit, error) {
	r.mu.Lock()
	a, ok := r.audits[id]
	r.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.mu.Lock()
	a.Store = r.stores[a.StoreID]
	r.mu.Unlock()
	if r.templates != nil {
		if t, err := r.templates.FindByID(ctx, a.TemplateID); err == nil {
			a.Template = model.Template{ID: t.ID, Name: t.Name, Version: t.Version, Active: t.Active}
		}
	}
	return &a, nil
}

func (r *fakeAuditRepo) MarkSubmitted(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls++
	if r.markErr != nil {
		return false, r.markErr
	}
	a, ok := r.audits[id]
	if !ok || a.SubmittedAt != nil {
		return false, nil
	}
	a.SubmittedAt = &at
	r.audits[id] = a
	return true, nil
}

func (r *fakeAuditRepo) put(a model.Audit) {
	r.mu.Lock()
	r.audits[a.ID] = a
	r.mu.Unlock()
}

func (r *fakeAuditRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markCalls
}

type answerKey struct {
	auditID    uuid.UUID
	questionID uuid.UUID
}

type fakeAnswerRepo struct {
	mu      sync.Mutex
	rows    map[answerKey]model.Answer
	upserts int
	err     error
	// started and release let a test hold an upsert open.
	started chan struct{}
	release chan struct{}
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{rows: make(map[answerKey]model.Answer)}
}

func (r *fakeAnswerRepo) FindByAudit(_ context.Context, auditID uuid.UUID) ([]model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Answer
	for k, a := range r.rows {
		if k.auditID == auditID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) UpsertBatch(_ context.Context, answers []model.Answer) error {
	if r.started != nil {
		r.started <- struct{}{}
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.upserts++
	for _, a := range answers {
		k := answerKey{a.AuditID, a.QuestionID}
		if existing, ok := r.rows[k]; ok {
			a.ID = existing.ID
		} else {
			a.ID = uuid.New()
		}
		r.rows[k] = a
	}
	return nil
}

func (r *fakeAnswerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeFileRepo struct {
	mu    sync.Mutex
	files []model.AuditFile
	err   error
}

func (r *fakeFileRepo) Create(_ context.Context, f *model.AuditFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	f.ID = uuid.New()
	r.files = append(r.files, *f)
	return nil
}

func (r *fakeFileRepo) ListByAudit(_ context.Context, auditID uuid.UUID) ([]model.AuditFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AuditFile
	for _, f := range r.files {
		if f.AuditID == auditID {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *fakeObjectStore) Put(_ context.Context, key, contentType string, data []byte) (storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return storage.Object{}, s.putErr
	}
	s.objects[key] = data
	s.types[key] = contentType
	return storage.Object{Bucket: "audit-files", Key: key}, nil
}

func (s *fakeObjectStore) URL(_ context.Context, obj storage.Object) (string, error) {
	bucket := obj.Bucket
	if bucket == "" {
		bucket = "audit-files"
	}
	return fmt.Sprintf("https://files.example.com/%s/%s", bucket, obj.Key), nil
}

type fakeExporter struct {
	mu       sync.Mutex
	doc      ExportDocument
	err      error
	payloads []*ReportPayload
}

func (e *fakeExporter) Render(_ context.Context, p *ReportPayload) (ExportDocument, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.payloads = append(e.payloads, p)
	if e.err != nil {
		return nil, e.err
	}
	return e.doc, nil
}

type fakeNarrator struct {
	summary string
	err     error
}

func (n fakeNarrator) Summarize(context.Context, *ReportPayload) (string, error) {
	return n.summary, n.err
}

// foodSafety builds the "Food Safety v2" template: one "Hygiene" section
// with a binary question worth nothing and a score question worth 5.
func foodSafety() (*model.Template, model.Question, model.Question) {
	tmplID, secID := uuid.New(), uuid.New()
	q1 := model.Question{ID: uuid.New(), SectionID: secID, Code: "Q1", Prompt: "Hand wash station stocked?", AnswerType: model.AnswerTypeBinary, MaxPoints: 0, SortOrder: 1}
	q2 := model.Question{ID: uuid.New(), SectionID: secID, Code: "Q2", Prompt: "Food contact surfaces clean", AnswerType: model.AnswerTypeScore, MaxPoints: 5, SortOrder: 2}
	tmpl := &model.Template{
		ID:      tmplID,
		Name:    "Food Safety v2",
		Version: 2,
		Active:  true,
		Sections: []model.Section{
			{ID: secID, TemplateID: tmplID, Title: "Hygiene", SortOrder: 1, Questions: []model.Question{q2, q1}},
		},
	}
	return tmpl, q1, q2
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}
