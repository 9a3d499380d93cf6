package payrollapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"hrms.service/internal/ports/messaging"
)

// Client is the payroll system contract.
type Client interface {
	RecordSalary(ctx context.Context, event messaging.PayrollEvent) error
}

// StatusError is returned for non-2xx answers.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("payroll api returned status %d", e.StatusCode)
}

// HTTPClient posts salary records as JSON to the payroll API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
	}
}

func (c *HTTPClient) RecordSalary(ctx context.Context, event messaging.PayrollEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal payroll payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create payroll request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call payroll api: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	log.Ctx(ctx).Info().Int64("salary_id", event.SalaryID).Msg("salary recorded in payroll system")
	return nil
}
