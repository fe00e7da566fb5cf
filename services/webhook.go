package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookPayload is the normalized body posted to the configured CRM
// automation endpoint: the full estimate plus computed totals.
type WebhookPayload struct {
	Estimate
	Totals    EstimateTotals `json:"totals"`
	SentAtUTC string         `json:"sent_at_utc"`
}

// WebhookError distinguishes an endpoint that answered with a non-success
// status from one that could not be reached at all. Both carry a Guidance
// string surfaced to the user alongside the toast.
type WebhookError struct {
	Status   int // 0 when the request never completed
	Guidance string
	Err      error
}

func (e *WebhookError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("webhook endpoint returned status %d", e.Status)
	}
	return fmt.Sprintf("webhook request failed: %v", e.Err)
}

func (e *WebhookError) Unwrap() error { return e.Err }

// SendWebhook posts the estimate snapshot as JSON to url. Only Content-Type
// is set; the endpoint is user-configured and unauthenticated. Failures never
// mutate the estimate; callers surface the returned guidance to the user.
func SendWebhook(ctx context.Context, client *http.Client, url string, est Estimate) error {
	payload := WebhookPayload{
		Estimate:  est,
		Totals:    CalcEstimateTotals(est),
		SentAtUTC: time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &WebhookError{
			Err: err,
			Guidance: "The endpoint could not be reached. Check the URL, and note that " +
				"many automation services restrict cross-origin requests — a server-side " +
				"relay URL usually fixes this.",
		}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &WebhookError{
			Status: resp.StatusCode,
			Guidance: fmt.Sprintf("The endpoint answered with HTTP %d. Verify the webhook "+
				"URL is the one your CRM automation issued and that it accepts JSON posts.",
				resp.StatusCode),
		}
	}
	return nil
}
