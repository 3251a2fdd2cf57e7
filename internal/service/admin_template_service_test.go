package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplateRequest() dto.TemplateCreateDTO {
	return dto.TemplateCreateDTO{
		Name:    "Food Safety",
		Version: 3,
		Sections: []dto.SectionCreateDTO{
			{
				Title:     "Hygiene",
				SortOrder: 1,
				Questions: []dto.QuestionCreateDTO{
					{Code: "H1", Prompt: "Hand wash station stocked?", AnswerType: "binary", SortOrder: 1},
					{Code: "H2", Prompt: "Food contact surfaces clean", AnswerType: "score", MaxPoints: 5, SortOrder: 2},
				},
			},
			{
				Title:     "Storage",
				SortOrder: 2,
				Questions: []dto.QuestionCreateDTO{
					{Code: "S1", Prompt: "Fridge temperature log", AnswerType: "photo", SortOrder: 1},
				},
			},
		},
	}
}

func TestAdminTemplate_Create(t *testing.T) {
	templates := newFakeTemplateRepo()
	svc := NewAdminTemplateService(templates)
	admin := Session{UserID: uuid.New(), Role: RoleAdmin}

	resp, err := svc.CreateTemplate(context.Background(), admin, validTemplateRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.True(t, resp.Active)
	require.Len(t, resp.Sections, 2)
	require.Len(t, resp.Sections[0].Questions, 2)

	h2 := resp.Sections[0].Questions[1]
	assert.Equal(t, "H2", h2.Code)
	require.NotNil(t, h2.Scale)
	assert.Equal(t, dto.ScoreScaleDTO{Pass: 5, Fair: 3, Fail: 0}, *h2.Scale)
	assert.Nil(t, resp.Sections[0].Questions[0].Scale)
}

func TestAdminTemplate_CreateRejects(t *testing.T) {
	admin := Session{UserID: uuid.New(), Role: RoleAdmin}

	tests := []struct {
		name    string
		sess    Session
		mutate  func(*dto.TemplateCreateDTO)
		wantErr error
	}{
		{"non admin", Session{UserID: uuid.New(), Role: RoleManager}, func(*dto.TemplateCreateDTO) {}, ErrForbidden},
		{"blank name", admin, func(r *dto.TemplateCreateDTO) { r.Name = "  " }, ErrValidation},
		{"version zero", admin, func(r *dto.TemplateCreateDTO) { r.Version = 0 }, ErrValidation},
		{"no sections", admin, func(r *dto.TemplateCreateDTO) { r.Sections = nil }, ErrValidation},
		{"duplicate section order", admin, func(r *dto.TemplateCreateDTO) { r.Sections[1].SortOrder = 1 }, ErrValidation},
		{"empty section", admin, func(r *dto.TemplateCreateDTO) { r.Sections[1].Questions = nil }, ErrValidation},
		{"duplicate question order", admin, func(r *dto.TemplateCreateDTO) { r.Sections[0].Questions[1].SortOrder = 1 }, ErrValidation},
		{"duplicate code", admin, func(r *dto.TemplateCreateDTO) { r.Sections[1].Questions[0].Code = "H1" }, ErrValidation},
		{"unknown answer type", admin, func(r *dto.TemplateCreateDTO) { r.Sections[0].Questions[0].AnswerType = "rating" }, ErrUnknownAnswerType},
		{"score without points", admin, func(r *dto.TemplateCreateDTO) { r.Sections[0].Questions[1].MaxPoints = 0 }, ErrValidation},
		{"negative points", admin, func(r *dto.TemplateCreateDTO) { r.Sections[0].Questions[0].MaxPoints = -1 }, ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			templates := newFakeTemplateRepo()
			req := validTemplateRequest()
			tc.mutate(&req)

			_, err := NewAdminTemplateService(templates).CreateTemplate(context.Background(), tc.sess, req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, templates.templates, "nothing is written")
		})
	}
}

func TestAdminTemplate_Retire(t *testing.T) {
	ctx := context.Background()
	tmpl, _, _ := foodSafety()
	templates := newFakeTemplateRepo(tmpl)
	svc := NewAdminTemplateService(templates)
	admin := Session{UserID: uuid.New(), Role: RoleAdmin}

	assert.ErrorIs(t, svc.RetireTemplate(ctx, Session{UserID: uuid.New(), Role: RoleAuditor}, tmpl.ID), ErrForbidden)
	assert.True(t, templates.templates[tmpl.ID].Active)

	require.NoError(t, svc.RetireTemplate(ctx, admin, tmpl.ID))
	assert.False(t, templates.templates[tmpl.ID].Active)

	listed, err := NewCatalogService(templates).ListActiveTemplates(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.ErrorIs(t, svc.RetireTemplate(ctx, admin, uuid.New()), ErrTemplateNotFound)
}
