package service

import (
	"math"

	"github.com/lshigami/storeaudit/internal/model"
)

// ScoreTally totals the points of an audit. N/A answers are excluded from
// both earned and possible points; unanswered questions count as possible.
type ScoreTally struct {
	Earned   float64 `json:"earned"`
	Possible float64 `json:"possible"`
	Percent  float64 `json:"percent"`
	Excluded int     `json:"excluded"`
}

func TallyScore(items []DraftItem) ScoreTally {
	var t ScoreTally
	for _, it := range items {
		q, e := it.Question, it.Entry
		switch q.AnswerType {
		case model.AnswerTypeScore:
			if e.ValueText != nil && ScoreChoice(*e.ValueText) == ChoiceNA {
				t.Excluded++
				continue
			}
			t.Possible += float64(ResolveScale(q.MaxPoints).Pass)
			if e.ValueNum != nil {
				t.Earned += *e.ValueNum
			}
		case model.AnswerTypeBinary:
			if q.MaxPoints <= 0 {
				continue
			}
			t.Possible += float64(q.MaxPoints)
			if e.ValueBool != nil && *e.ValueBool {
				t.Earned += float64(q.MaxPoints)
			}
		}
	}
	if t.Possible > 0 {
		t.Percent = math.Round(t.Earned/t.Possible*1000) / 10
	}
	return t
}
