package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScale(t *testing.T) {
	tests := []struct {
		max  int
		want ScoreScale
	}{
		{10, ScoreScale{5, 3, 0}},
		{5, ScoreScale{5, 3, 0}},
		{4, ScoreScale{4, 2, 0}},
		{3, ScoreScale{3, 2, 0}},
		{2, ScoreScale{2, 1, 0}},
		{1, ScoreScale{1, 0, 0}},
		{0, ScoreScale{0, 0, 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveScale(tt.max), "max=%d", tt.max)
	}
}

func TestScoreValue(t *testing.T) {
	require.NotNil(t, ScoreValue(5, ChoicePass))
	assert.Equal(t, 5.0, *ScoreValue(5, ChoicePass))
	assert.Equal(t, 3.0, *ScoreValue(5, ChoiceFair))
	assert.Equal(t, 0.0, *ScoreValue(5, ChoiceFail))
	assert.Equal(t, 2.0, *ScoreValue(3, ChoiceFair))
	assert.Equal(t, 1.0, *ScoreValue(2, ChoiceFair))
	assert.Nil(t, ScoreValue(5, ChoiceNA))
}

func TestParseScoreChoice(t *testing.T) {
	for _, s := range []string{"pass", "fair", "fail", "na"} {
		c, err := ParseScoreChoice(s)
		require.NoError(t, err)
		assert.Equal(t, ScoreChoice(s), c)
	}
	_, err := ParseScoreChoice("PASS")
	assert.ErrorIs(t, err, ErrInvalidChoice)
	_, err = ParseScoreChoice("")
	assert.ErrorIs(t, err, ErrInvalidChoice)
}
