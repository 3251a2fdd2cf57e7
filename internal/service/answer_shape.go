package service

import (
	"fmt"

	"github.com/lshigami/storeaudit/internal/model"
)

// Entry is the editable state of one answer. Nil fields are unset.
type Entry struct {
	ValueBool *bool
	ValueNum  *float64
	ValueText *string
	Notes     *string
}

func (e Entry) IsEmpty() bool {
	return e.ValueBool == nil && e.ValueNum == nil && e.ValueText == nil && e.Notes == nil
}

func (e Entry) equal(o Entry) bool {
	return eqPtr(e.ValueBool, o.ValueBool) && eqPtr(e.ValueNum, o.ValueNum) &&
		eqPtr(e.ValueText, o.ValueText) && eqPtr(e.Notes, o.Notes)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptr[T any](v T) *T { return &v }

// Patch is a field-level update. Only non-nil fields are applied.
type Patch struct {
	ValueBool *bool
	ValueNum  *float64
	ValueText *string
	Notes     *string
}

// answerShape owns everything that depends on a question's answer type:
// merging patches into drafts, reading persisted rows and shaping rows for
// the upsert. shapeFor is the only place that switches on the type.
type answerShape interface {
	merge(q model.Question, cur Entry, p Patch) (Entry, error)
	fromAnswer(a model.Answer) Entry
	toAnswer(e Entry, a *model.Answer)
}

func shapeFor(t model.AnswerType) (answerShape, error) {
	switch t {
	case model.AnswerTypeBinary:
		return binaryShape{}, nil
	case model.AnswerTypeScore:
		return scoreShape{}, nil
	case model.AnswerTypeText, model.AnswerTypePhoto:
		return textShape{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAnswerType, t)
}

type binaryShape struct{}

func (binaryShape) merge(q model.Question, cur Entry, p Patch) (Entry, error) {
	if p.ValueNum != nil || p.ValueText != nil {
		return cur, fmt.Errorf("%w: question %s (binary) only takes value_bool and notes", ErrFieldNotApplicable, q.Code)
	}
	if p.ValueBool != nil {
		cur.ValueBool = ptr(*p.ValueBool)
	}
	if p.Notes != nil {
		cur.Notes = ptr(*p.Notes)
	}
	return cur, nil
}

func (binaryShape) fromAnswer(a model.Answer) Entry {
	return Entry{ValueBool: a.ValueBool, Notes: a.Notes}
}

func (binaryShape) toAnswer(e Entry, a *model.Answer) {
	a.ValueBool = e.ValueBool
	a.Notes = e.Notes
}

// scoreShape stores the choice in value_text and derives value_num from the
// question's scale, so clients never send points directly.
type scoreShape struct{}

func (scoreShape) merge(q model.Question, cur Entry, p Patch) (Entry, error) {
	if p.ValueBool != nil || p.ValueNum != nil {
		return cur, fmt.Errorf("%w: question %s (score) takes a choice in value_text and notes", ErrFieldNotApplicable, q.Code)
	}
	if p.ValueText != nil {
		choice, err := ParseScoreChoice(*p.ValueText)
		if err != nil {
			return cur, err
		}
		cur.ValueText = ptr(string(choice))
		cur.ValueNum = ScoreValue(q.MaxPoints, choice)
	}
	if p.Notes != nil {
		cur.Notes = ptr(*p.Notes)
	}
	return cur, nil
}

func (scoreShape) fromAnswer(a model.Answer) Entry {
	return Entry{ValueNum: a.ValueNum, ValueText: a.ValueText, Notes: a.Notes}
}

func (scoreShape) toAnswer(e Entry, a *model.Answer) {
	a.ValueText = e.ValueText
	if e.ValueText != nil && ScoreChoice(*e.ValueText) == ChoiceNA {
		a.ValueNum = nil
	} else {
		a.ValueNum = e.ValueNum
	}
	a.Notes = e.Notes
}

// textShape covers free text and photo answers; a photo answer's value_text
// is the image link.
type textShape struct{}

func (textShape) merge(q model.Question, cur Entry, p Patch) (Entry, error) {
	if p.ValueBool != nil || p.ValueNum != nil {
		return cur, fmt.Errorf("%w: question %s (%s) only takes value_text and notes", ErrFieldNotApplicable, q.Code, q.AnswerType)
	}
	if p.ValueText != nil {
		cur.ValueText = ptr(*p.ValueText)
	}
	if p.Notes != nil {
		cur.Notes = ptr(*p.Notes)
	}
	return cur, nil
}

func (textShape) fromAnswer(a model.Answer) Entry {
	return Entry{ValueText: a.ValueText, Notes: a.Notes}
}

func (textShape) toAnswer(e Entry, a *model.Answer) {
	a.ValueText = e.ValueText
	a.Notes = e.Notes
}
