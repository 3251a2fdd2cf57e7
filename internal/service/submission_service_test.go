package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submissionFixture struct {
	svc      *submissionService
	audits   *fakeAuditRepo
	answers  *fakeAnswerRepo
	files    *fakeFileRepo
	exporter *fakeExporter
	store    *fakeObjectStore
	audit    *model.Audit
	tmpl     *model.Template
	draft    *Draft
	q1, q2   model.Question
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	tmpl, q1, q2 := foodSafety()
	templates := newFakeTemplateRepo(tmpl)
	store := model.Store{ID: uuid.New(), Name: "Stockport"}
	audits := newFakeAuditRepo(templates, store)
	audit := model.Audit{ID: uuid.New(), StoreID: store.ID, Store: store, TemplateID: tmpl.ID, AuditorID: uuid.New(), StartedAt: fixedClock().Add(-time.Hour)}
	audits.put(audit)

	draft, err := NewDraft(audit.ID, tmpl.OrderedQuestions(), nil, ReseedReplace)
	require.NoError(t, err)

	f := &submissionFixture{
		audits:   audits,
		answers:  newFakeAnswerRepo(),
		files:    &fakeFileRepo{},
		exporter: &fakeExporter{doc: BinaryDocument{Data: samplePDF, ContentType: "application/pdf"}},
		store:    newFakeObjectStore(),
		audit:    &audit,
		tmpl:     tmpl,
		draft:    draft,
		q1:       q1,
		q2:       q2,
	}
	f.svc = NewSubmissionService(
		NewAnswerSynchronizer(f.answers, nil),
		audits, f.files, f.exporter, nil, f.store, nil,
	).(*submissionService)
	f.svc.now = fixedClock
	return f
}

func (f *submissionFixture) submit() (*SubmissionResult, error) {
	return f.svc.Submit(context.Background(), f.audit, f.tmpl, f.draft)
}

func TestSubmit_SavesMarksAndRegistersReport(t *testing.T) {
	f := newSubmissionFixture(t)
	_, _ = f.draft.SetValue(f.q1.ID, Patch{ValueBool: ptr(true)})
	_, _ = f.draft.SetValue(f.q2.ID, Patch{ValueText: ptr("pass")})

	res, err := f.submit()
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.NotNil(t, res.Audit.SubmittedAt)
	assert.Equal(t, fixedClock(), *res.Audit.SubmittedAt)

	assert.Equal(t, 2, f.answers.count(), "draft is flushed before submitting")

	require.NotNil(t, res.File)
	assert.Equal(t, "Food Safety v2 - Stockport - 2026-03-14.pdf", res.File.Name)
	assert.Equal(t, "https://files.example.com/audit-files/audits/"+f.audit.ID.String()+"/reports/20260314T093000Z.pdf", res.File.URL)
	require.Len(t, f.files.files, 1)

	require.Len(t, f.exporter.payloads, 1)
	p := f.exporter.payloads[0]
	assert.Equal(t, "Stockport", p.StoreName)
	require.NotNil(t, p.SubmittedAt)
	require.Len(t, p.Sections, 1)
	assert.Len(t, p.Sections[0].Items, 2)
}

func TestSubmit_IsSingleFire(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.submit()
	require.NoError(t, err)
	assert.Equal(t, 1, f.audits.calls())

	_, err = f.submit()
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// a fresh copy of the audit as another request would load it
	again := *f.audit
	again.SubmittedAt = nil
	_, err = f.svc.Submit(context.Background(), &again, f.tmpl, f.draft)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	assert.Equal(t, 1, f.audits.calls(), "status update is never issued twice")
	assert.Len(t, f.exporter.payloads, 1)
}

func TestSubmit_AlreadySubmittedAuditIsRejectedUpFront(t *testing.T) {
	f := newSubmissionFixture(t)
	at := fixedClock().Add(-time.Minute)
	f.audit.SubmittedAt = &at

	_, err := f.submit()
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 0, f.audits.calls())
	assert.Equal(t, 0, f.answers.upserts)
}

func TestSubmit_SaveFailureAbortsAndAllowsRetry(t *testing.T) {
	f := newSubmissionFixture(t)
	_, _ = f.draft.SetValue(f.q1.ID, Patch{ValueBool: ptr(true)})
	f.answers.err = errors.New("connection reset")

	_, err := f.submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, f.audit.SubmittedAt)
	assert.Equal(t, 0, f.audits.calls(), "status is not touched when the save fails")
	assert.True(t, f.draft.Dirty())

	f.answers.err = nil
	res, err := f.submit()
	require.NoError(t, err)
	assert.NotNil(t, res.Audit.SubmittedAt)
}

func TestSubmit_StatusUpdateFailureKeepsAuditEditable(t *testing.T) {
	f := newSubmissionFixture(t)
	f.audits.markErr = errors.New("new row violates row-level security policy")

	_, err := f.submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row-level security")
	assert.Nil(t, f.audit.SubmittedAt)
	assert.Empty(t, f.exporter.payloads)

	f.audits.markErr = nil
	_, err = f.submit()
	assert.NoError(t, err)
}

func TestSubmit_ExportFailuresAreWarnings(t *testing.T) {
	t.Run("renderer down", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.exporter.err = errors.New("export function returned status 503")

		res, err := f.submit()
		require.NoError(t, err)
		assert.NotNil(t, res.Audit.SubmittedAt)
		assert.Nil(t, res.File)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "no report was produced")
	})

	t.Run("upload fails", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.store.putErr = errors.New("bucket not found")

		res, err := f.submit()
		require.NoError(t, err)
		assert.Nil(t, res.File)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "bucket not found")
	})

	t.Run("registration fails", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.exporter.doc = RemoteLink{URL: "https://cdn.example.com/r.pdf"}
		f.files.err = errors.New("insert denied")

		res, err := f.submit()
		require.NoError(t, err)
		assert.Nil(t, res.File)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "https://cdn.example.com/r.pdf")
	})
}

func TestSubmit_NarratorSummary(t *testing.T) {
	f := newSubmissionFixture(t)
	f.svc.narrator = fakeNarrator{summary: "Surfaces need attention."}
	_, err := f.submit()
	require.NoError(t, err)
	assert.Equal(t, "Surfaces need attention.", f.exporter.payloads[0].Summary)

	f = newSubmissionFixture(t)
	f.svc.narrator = fakeNarrator{err: ErrNarratorUnavailable}
	res, err := f.submit()
	require.NoError(t, err)
	assert.Empty(t, res.Warnings, "a missing narrator is not worth a warning")

	f = newSubmissionFixture(t)
	f.svc.narrator = fakeNarrator{err: errors.New("quota exceeded")}
	res, err = f.submit()
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.NotNil(t, res.File, "the report is still exported")
}
