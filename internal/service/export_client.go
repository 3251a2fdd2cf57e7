package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lshigami/storeaudit/config"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxExportResponseBytes = 50 << 20

// ExportClient renders report payloads through the external PDF function.
type ExportClient interface {
	Render(ctx context.Context, payload *ReportPayload) (ExportDocument, error)
}

type httpExportClient struct {
	functionURL string
	apiKey      string
	httpClient  *http.Client
}

func NewExportClient(cfg *config.Config) ExportClient {
	timeout := cfg.Export.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if cfg.Export.FunctionURL == "" {
		log.Warn().Msg("EXPORT_FUNCTION_URL is not set. Submitted audits will not produce a report.")
	}
	return &httpExportClient{
		functionURL: cfg.Export.FunctionURL,
		apiKey:      cfg.Export.APIKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *httpExportClient) Render(ctx context.Context, payload *ReportPayload) (ExportDocument, error) {
	if c.functionURL == "" {
		return nil, ErrExportNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.functionURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf, application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxExportResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read export response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Int("status", resp.StatusCode).Str("auditID", payload.AuditID.String()).Msg("Export function returned an error")
		return nil, fmt.Errorf("export function returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	doc, err := ParseExportResponse(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("auditID", payload.AuditID.String()).Str("shape", doc.Shape()).Msg("Export function responded")
	return doc, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
