package service

import "fmt"

// ScoreChoice is the value stored in value_text for score questions.
type ScoreChoice string

const (
	ChoicePass ScoreChoice = "pass"
	ChoiceFair ScoreChoice = "fair"
	ChoiceFail ScoreChoice = "fail"
	ChoiceNA   ScoreChoice = "na"
)

func ParseScoreChoice(s string) (ScoreChoice, error) {
	switch c := ScoreChoice(s); c {
	case ChoicePass, ChoiceFair, ChoiceFail, ChoiceNA:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q (want pass, fair, fail or na)", ErrInvalidChoice, s)
}

// ScoreScale is the three-tier point scale for a question.
type ScoreScale struct {
	Pass int `json:"pass"`
	Fair int `json:"fair"`
	Fail int `json:"fail"`
}

// ResolveScale maps a question's max points onto its pass/fair/fail values.
func ResolveScale(maxPoints int) ScoreScale {
	switch {
	case maxPoints >= 5:
		return ScoreScale{Pass: 5, Fair: 3, Fail: 0}
	case maxPoints == 3:
		return ScoreScale{Pass: 3, Fair: 2, Fail: 0}
	case maxPoints == 2:
		return ScoreScale{Pass: 2, Fair: 1, Fail: 0}
	default:
		return ScoreScale{Pass: maxPoints, Fair: maxPoints / 2, Fail: 0}
	}
}

// ScoreValue is the value_num stored for a choice. N/A has no value and must
// be left out of any totals.
func ScoreValue(maxPoints int, choice ScoreChoice) *float64 {
	scale := ResolveScale(maxPoints)
	var v int
	switch choice {
	case ChoicePass:
		v = scale.Pass
	case ChoiceFair:
		v = scale.Fair
	case ChoiceFail:
		v = scale.Fail
	default:
		return nil
	}
	f := float64(v)
	return &f
}
