package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrWebhookNotConfigured is returned when no webhook URL is set.
var ErrWebhookNotConfigured = errors.New("webhook url not configured")

const (
	DefaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Forwarder delivers a validated submission to the external record keeper.
type Forwarder interface {
	Forward(ctx context.Context, s Submission) error
}

// Webhook posts submissions as JSON to a single endpoint. It does not retry and
// ignores the response body of successful calls.
type Webhook struct {
	url    string
	client *http.Client
	now    func() time.Time
}

func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Webhook{url: url, client: client, now: time.Now}
}

// Configured reports whether a URL is set.
func (w *Webhook) Configured() bool {
	return w != nil && w.url != ""
}

func (w *Webhook) Forward(ctx context.Context, s Submission) error {
	if !w.Configured() {
		return ErrWebhookNotConfigured
	}

	payload, err := encodePayload(s, w.now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", s.Action(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Submission-ID", uuid.NewString())

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s submission: %w", s.Action(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("webhook error: status %d body %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type newsletterPayload struct {
	Action string `json:"action"`
	Newsletter
	Timestamp string `json:"timestamp"`
}

type contactPayload struct {
	Action string `json:"action"`
	Contact
	Timestamp string `json:"timestamp"`
}

func encodePayload(s Submission, timestamp string) ([]byte, error) {
	var payload any
	switch v := s.(type) {
	case Newsletter:
		payload = newsletterPayload{Action: v.Action(), Newsletter: v, Timestamp: timestamp}
	case Contact:
		payload = contactPayload{Action: v.Action(), Contact: v, Timestamp: timestamp}
	default:
		return nil, fmt.Errorf("unsupported submission %T", s)
	}
	return json.Marshal(payload)
}
