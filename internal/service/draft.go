package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
)

// ReseedPolicy decides what happens to unsaved local edits when persisted
// answers are loaded into an existing draft.
type ReseedPolicy string

const (
	// ReseedReplace drops local edits; the persisted answers win.
	ReseedReplace ReseedPolicy = "replace"
	// ReseedPreferLocal keeps entries edited since the last save.
	ReseedPreferLocal ReseedPolicy = "prefer_local"
)

func ParseReseedPolicy(s string) (ReseedPolicy, error) {
	switch p := ReseedPolicy(s); p {
	case ReseedReplace, ReseedPreferLocal:
		return p, nil
	case "":
		return ReseedReplace, nil
	}
	return "", fmt.Errorf("%w: unknown reseed policy %q", ErrValidation, s)
}

// DraftItem pairs a question with its current draft entry.
type DraftItem struct {
	Question model.Question
	Entry    Entry
}

// Draft is the in-memory answer set of the audit being edited. It exposes
// one entry per template question, in template order.
type Draft struct {
	mu        sync.RWMutex
	auditID   uuid.UUID
	policy    ReseedPolicy
	questions []model.Question
	byID      map[uuid.UUID]model.Question
	entries   map[uuid.UUID]Entry
	dirty     map[uuid.UUID]struct{}
}

// NewDraft reconciles the template's questions with persisted answers.
// Answers for questions outside the template are ignored.
func NewDraft(auditID uuid.UUID, questions []model.Question, answers []model.Answer, policy ReseedPolicy) (*Draft, error) {
	d := &Draft{
		auditID:   auditID,
		policy:    policy,
		questions: questions,
		byID:      make(map[uuid.UUID]model.Question, len(questions)),
		dirty:     make(map[uuid.UUID]struct{}),
	}
	for _, q := range questions {
		if _, err := shapeFor(q.AnswerType); err != nil {
			return nil, fmt.Errorf("question %s: %w", q.Code, err)
		}
		d.byID[q.ID] = q
	}
	d.entries = d.entriesFrom(answers)
	return d, nil
}

func (d *Draft) AuditID() uuid.UUID { return d.auditID }

// Questions returns the template questions in display order.
func (d *Draft) Questions() []model.Question {
	return d.questions
}

func (d *Draft) Len() int { return len(d.questions) }

// SetValue merges a patch into one entry. Fields absent from the patch keep
// their current value.
func (d *Draft) SetValue(questionID uuid.UUID, p Patch) (Entry, error) {
	q, ok := d.byID[questionID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	shape, err := shapeFor(q.AnswerType)
	if err != nil {
		return Entry{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := shape.merge(q, d.entries[questionID], p)
	if err != nil {
		return Entry{}, err
	}
	d.entries[questionID] = next
	d.dirty[questionID] = struct{}{}
	return next, nil
}

func (d *Draft) Entry(questionID uuid.UUID) (Entry, bool) {
	if _, ok := d.byID[questionID]; !ok {
		return Entry{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.entries[questionID], true
}

// Items returns every question with its entry; unanswered entries are empty.
func (d *Draft) Items() []DraftItem {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]DraftItem, 0, len(d.questions))
	for _, q := range d.questions {
		out = append(out, DraftItem{Question: q, Entry: d.entries[q.ID]})
	}
	return out
}

// Dirty reports whether there are edits not yet confirmed by a save.
func (d *Draft) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.dirty) > 0
}

// Reseed loads persisted answers into the draft according to its policy.
func (d *Draft) Reseed(answers []model.Answer) {
	fresh := d.entriesFrom(answers)

	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.policy {
	case ReseedPreferLocal:
		for id := range d.dirty {
			fresh[id] = d.entries[id]
		}
	default:
		d.dirty = make(map[uuid.UUID]struct{})
	}
	d.entries = fresh
}

func (d *Draft) snapshot() map[uuid.UUID]Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[uuid.UUID]Entry, len(d.entries))
	for id, e := range d.entries {
		out[id] = e
	}
	return out
}

// markSaved clears the dirty flag of entries still equal to what was saved.
// Entries edited while the save was running stay dirty.
func (d *Draft) markSaved(saved map[uuid.UUID]Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id := range d.dirty {
		if e, ok := saved[id]; ok && e.equal(d.entries[id]) {
			delete(d.dirty, id)
		}
	}
}

func (d *Draft) entriesFrom(answers []model.Answer) map[uuid.UUID]Entry {
	entries := make(map[uuid.UUID]Entry, len(d.questions))
	for _, a := range answers {
		q, ok := d.byID[a.QuestionID]
		if !ok {
			continue
		}
		shape, err := shapeFor(q.AnswerType)
		if err != nil {
			continue
		}
		entries[q.ID] = shape.fromAnswer(a)
	}
	return entries
}
