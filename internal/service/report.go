package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
)

// ReportPayload is the denormalized document sent to the PDF function.
type ReportPayload struct {
	AuditID         uuid.UUID       `json:"audit_id"`
	StoreName       string          `json:"store_name"`
	TemplateName    string          `json:"template_name"`
	TemplateVersion int             `json:"template_version"`
	AuditorID       uuid.UUID       `json:"auditor_id"`
	StartedAt       time.Time       `json:"started_at"`
	SubmittedAt     *time.Time      `json:"submitted_at,omitempty"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Sections        []ReportSection `json:"sections"`
	Score           ScoreTally      `json:"score"`
	Summary         string          `json:"summary,omitempty"`
}

type ReportSection struct {
	Title string       `json:"title"`
	Items []ReportItem `json:"items"`
}

// ReportItem carries one question and its current answer. Unanswered
// questions are included with empty values.
type ReportItem struct {
	QuestionID uuid.UUID        `json:"question_id"`
	Code       string           `json:"code"`
	Prompt     string           `json:"prompt"`
	AnswerType model.AnswerType `json:"answer_type"`
	MaxPoints  int              `json:"max_points"`
	ValueBool  *bool            `json:"value_bool"`
	ValueNum   *float64         `json:"value_num"`
	ValueText  *string          `json:"value_text"`
	Notes      *string          `json:"notes"`
	PhotoURL   string           `json:"photo_url,omitempty"`
}

// BuildReportPayload walks the template in display order and attaches the
// draft entry of every question.
func BuildReportPayload(audit *model.Audit, tmpl *model.Template, draft *Draft, generatedAt time.Time) *ReportPayload {
	payload := &ReportPayload{
		AuditID:         audit.ID,
		StoreName:       audit.Store.Name,
		TemplateName:    tmpl.Name,
		TemplateVersion: tmpl.Version,
		AuditorID:       audit.AuditorID,
		StartedAt:       audit.StartedAt,
		SubmittedAt:     audit.SubmittedAt,
		GeneratedAt:     generatedAt,
	}

	items := draft.Items()
	byQuestion := make(map[uuid.UUID]Entry, len(items))
	for _, it := range items {
		byQuestion[it.Question.ID] = it.Entry
	}

	sections := make([]model.Section, len(tmpl.Sections))
	copy(sections, tmpl.Sections)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].SortOrder < sections[j].SortOrder })

	for _, s := range sections {
		questions := make([]model.Question, len(s.Questions))
		copy(questions, s.Questions)
		sort.SliceStable(questions, func(i, j int) bool { return questions[i].SortOrder < questions[j].SortOrder })

		rs := ReportSection{Title: s.Title, Items: make([]ReportItem, 0, len(questions))}
		for _, q := range questions {
			e := byQuestion[q.ID]
			item := ReportItem{
				QuestionID: q.ID,
				Code:       q.Code,
				Prompt:     q.Prompt,
				AnswerType: q.AnswerType,
				MaxPoints:  q.MaxPoints,
				ValueBool:  e.ValueBool,
				ValueNum:   e.ValueNum,
				ValueText:  e.ValueText,
				Notes:      e.Notes,
			}
			if q.AnswerType == model.AnswerTypePhoto && e.ValueText != nil {
				item.PhotoURL = *e.ValueText
			}
			rs.Items = append(rs.Items, item)
		}
		payload.Sections = append(payload.Sections, rs)
	}
	payload.Score = TallyScore(items)
	return payload
}
