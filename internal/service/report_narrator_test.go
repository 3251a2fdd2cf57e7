package service

import (
	"context"
	"testing"

	"github.com/lshigami/storeaudit/config"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportNarrator_WithoutKey(t *testing.T) {
	n, err := NewReportNarrator(&config.Config{})
	require.NoError(t, err)

	_, err = n.Summarize(context.Background(), &ReportPayload{})
	assert.ErrorIs(t, err, ErrNarratorUnavailable)
}

func TestBuildNarrativePrompt(t *testing.T) {
	p := &ReportPayload{
		StoreName:       "Stockport",
		TemplateName:    "Food Safety v2",
		TemplateVersion: 2,
		Score:           ScoreTally{Earned: 3, Possible: 10, Percent: 30, Excluded: 1},
		Sections: []ReportSection{{
			Title: "Hygiene",
			Items: []ReportItem{
				{Code: "Q1", Prompt: "Hand wash station stocked?", AnswerType: model.AnswerTypeBinary, ValueBool: ptr(false)},
				{Code: "Q2", Prompt: "Food contact surfaces clean", AnswerType: model.AnswerTypeScore, ValueText: ptr("fair"), Notes: ptr(" crumbs on slicer ")},
				{Code: "Q3", Prompt: "Floors dry", AnswerType: model.AnswerTypeScore, ValueText: ptr("pass")},
				{Code: "Q4", Prompt: "Gloves available", AnswerType: model.AnswerTypeBinary, ValueBool: ptr(true)},
			},
		}},
	}

	prompt := buildNarrativePrompt(p)
	assert.Contains(t, prompt, "Store: Stockport")
	assert.Contains(t, prompt, "Food Safety v2 (version 2)")
	assert.Contains(t, prompt, "3.0 of 10.0 points (30.0%), 1 item(s) not applicable")
	assert.Contains(t, prompt, "- [Hygiene] Q1 Hand wash station stocked?: answered no")
	assert.Contains(t, prompt, "- [Hygiene] Q2 Food contact surfaces clean: rated fair; note: crumbs on slicer")
	assert.NotContains(t, prompt, "Q3")
	assert.NotContains(t, prompt, "Q4")

	clean := buildNarrativePrompt(&ReportPayload{StoreName: "Stockport"})
	assert.Contains(t, clean, "No issues were recorded")
}
