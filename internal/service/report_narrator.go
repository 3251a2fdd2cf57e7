package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/storeaudit/config"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ReportNarrator writes a short management summary for a report.
type ReportNarrator interface {
	Summarize(ctx context.Context, payload *ReportPayload) (string, error)
}

type geminiReportNarrator struct {
	client *genai.GenerativeModel
}

// NewReportNarrator returns a narrator backed by Gemini. Without an API key
// the narrator is returned but every call fails with ErrNarratorUnavailable.
func NewReportNarrator(cfg *config.Config) (ReportNarrator, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Reports will be exported without a summary.")
		return &geminiReportNarrator{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel("gemini-1.5-flash")
	m.SetTemperature(0.2)
	return &geminiReportNarrator{client: m}, nil
}

func (n *geminiReportNarrator) Summarize(ctx context.Context, payload *ReportPayload) (string, error) {
	if n.client == nil {
		return "", ErrNarratorUnavailable
	}

	resp, err := n.client.GenerateContent(ctx, genai.Text(buildNarrativePrompt(payload)))
	if err != nil {
		log.Error().Err(err).Str("auditID", payload.AuditID.String()).Msg("Gemini API error during report summary")
		return "", fmt.Errorf("gemini summary failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return summary, nil
}

// buildNarrativePrompt lists the findings worth a manager's attention: failed
// or fair score items, binary checks answered "no" and any notes.
func buildNarrativePrompt(p *ReportPayload) string {
	var sb strings.Builder
	sb.WriteString("You are a retail operations auditor writing for a store manager.\n")
	fmt.Fprintf(&sb, "Store: %s\nAudit template: %s (version %d)\n", p.StoreName, p.TemplateName, p.TemplateVersion)
	fmt.Fprintf(&sb, "Score: %.1f of %.1f points (%.1f%%), %d item(s) not applicable.\n\n", p.Score.Earned, p.Score.Possible, p.Score.Percent, p.Score.Excluded)
	sb.WriteString("Findings:\n")

	findings := 0
	for _, s := range p.Sections {
		for _, it := range s.Items {
			line := findingLine(it)
			if line == "" {
				continue
			}
			fmt.Fprintf(&sb, "- [%s] %s %s: %s\n", s.Title, it.Code, it.Prompt, line)
			findings++
		}
	}
	if findings == 0 {
		sb.WriteString("- No issues were recorded.\n")
	}
	sb.WriteString("\nWrite a summary of at most five sentences. Name the most important issues first and suggest concrete follow-up actions. Do not invent findings.\n")
	return sb.String()
}

func findingLine(it ReportItem) string {
	var parts []string
	switch it.AnswerType {
	case model.AnswerTypeBinary:
		if it.ValueBool != nil && !*it.ValueBool {
			parts = append(parts, "answered no")
		}
	case model.AnswerTypeScore:
		if it.ValueText != nil {
			if c := ScoreChoice(*it.ValueText); c == ChoiceFail || c == ChoiceFair {
				parts = append(parts, "rated "+string(c))
			}
		}
	}
	if it.Notes != nil && strings.TrimSpace(*it.Notes) != "" {
		parts = append(parts, "note: "+strings.TrimSpace(*it.Notes))
	}
	return strings.Join(parts, "; ")
}
