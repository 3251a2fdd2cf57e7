package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAll_IsIdempotent(t *testing.T) {
	tmpl, q1, q2 := foodSafety()
	auditID := uuid.New()
	repo := newFakeAnswerRepo()
	s := NewAnswerSynchronizer(repo, nil)

	d, err := NewDraft(auditID, tmpl.OrderedQuestions(), nil, ReseedReplace)
	require.NoError(t, err)
	_, _ = d.SetValue(q1.ID, Patch{ValueBool: ptr(true)})
	_, _ = d.SetValue(q2.ID, Patch{ValueText: ptr("pass")})

	for i := 0; i < 2; i++ {
		n, err := s.SaveAll(context.Background(), auditID, d.Questions(), d)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	}
	assert.Equal(t, 2, repo.count(), "repeated saves keep one row per question")

	answers, _ := repo.FindByAudit(context.Background(), auditID)
	byQuestion := map[uuid.UUID]model.Answer{}
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}
	assert.True(t, *byQuestion[q1.ID].ValueBool)
	assert.Nil(t, byQuestion[q1.ID].ValueText)
	assert.Equal(t, "pass", *byQuestion[q2.ID].ValueText)
	assert.Equal(t, 5.0, *byQuestion[q2.ID].ValueNum)
	assert.False(t, d.Dirty())
}

func TestSaveAll_SkipsEmptyEntries(t *testing.T) {
	tmpl, q1, _ := foodSafety()
	auditID := uuid.New()
	repo := newFakeAnswerRepo()
	d, _ := NewDraft(auditID, tmpl.OrderedQuestions(), nil, ReseedReplace)
	_, _ = d.SetValue(q1.ID, Patch{Notes: ptr("checked at 9am")})

	n, err := NewAnswerSynchronizer(repo, nil).SaveAll(context.Background(), auditID, d.Questions(), d)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	untouched, _ := NewDraft(uuid.New(), tmpl.OrderedQuestions(), nil, ReseedReplace)
	n, err = NewAnswerSynchronizer(repo, nil).SaveAll(context.Background(), untouched.AuditID(), untouched.Questions(), untouched)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, repo.upserts)
}

func TestSaveAll_ScoreNAStoresNullPoints(t *testing.T) {
	tmpl, _, q2 := foodSafety()
	auditID := uuid.New()
	repo := newFakeAnswerRepo()
	d, _ := NewDraft(auditID, tmpl.OrderedQuestions(), nil, ReseedReplace)
	_, _ = d.SetValue(q2.ID, Patch{ValueText: ptr("na")})

	_, err := NewAnswerSynchronizer(repo, nil).SaveAll(context.Background(), auditID, d.Questions(), d)
	require.NoError(t, err)
	row := repo.rows[answerKey{auditID, q2.ID}]
	assert.Equal(t, "na", *row.ValueText)
	assert.Nil(t, row.ValueNum)
}

func TestSaveAll_FailureKeepsDraftDirty(t *testing.T) {
	tmpl, q1, _ := foodSafety()
	auditID := uuid.New()
	repo := newFakeAnswerRepo()
	repo.err = errors.New("permission denied for table audit_answers")
	d, _ := NewDraft(auditID, tmpl.OrderedQuestions(), nil, ReseedReplace)
	_, _ = d.SetValue(q1.ID, Patch{ValueBool: ptr(true)})

	_, err := NewAnswerSynchronizer(repo, nil).SaveAll(context.Background(), auditID, d.Questions(), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied for table audit_answers")
	assert.True(t, d.Dirty())
	e, _ := d.Entry(q1.ID)
	assert.True(t, *e.ValueBool)
}

func TestSaveAll_RejectsConcurrentSaveForSameAudit(t *testing.T) {
	tmpl, q1, _ := foodSafety()
	auditID := uuid.New()
	repo := newFakeAnswerRepo()
	repo.started = make(chan struct{})
	repo.release = make(chan struct{})
	s := NewAnswerSynchronizer(repo, nil)

	d, _ := NewDraft(auditID, tmpl.OrderedQuestions(), nil, ReseedReplace)
	_, _ = d.SetValue(q1.ID, Patch{ValueBool: ptr(true)})

	done := make(chan error, 1)
	go func() {
		_, err := s.SaveAll(context.Background(), auditID, d.Questions(), d)
		done <- err
	}()
	<-repo.started

	_, err := s.SaveAll(context.Background(), auditID, d.Questions(), d)
	assert.ErrorIs(t, err, ErrSaveInProgress)

	close(repo.release)
	require.NoError(t, <-done)

	repo.started = nil
	_, err = s.SaveAll(context.Background(), auditID, d.Questions(), d)
	assert.NoError(t, err, "guard is released after the first save")
}
