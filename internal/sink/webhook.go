package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/serroba/storylog/internal/storylog"
)

// Webhook forwards records to a spreadsheet webhook with a single POST.
type Webhook struct {
	client *http.Client
	url    string
	secret string
}

// NewWebhook creates a webhook sink. A nil client falls back to http.DefaultClient.
func NewWebhook(client *http.Client, webhookURL, secret string) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}

	return &Webhook{
		client: client,
		url:    webhookURL,
		secret: secret,
	}
}

// Forward posts the record once. The request is bound to ctx, so it is abandoned
// when the caller goes away.
func (w *Webhook) Forward(ctx context.Context, record *storylog.Record) error {
	payload, err := NewPayload(record, w.secret)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sink request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to sink: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read sink error body: %w", err)
		}

		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Ping checks that the webhook is configured well enough to accept records.
// It does not contact the sink.
func (w *Webhook) Ping(_ context.Context) error {
	if w.url == "" {
		return ErrNoWebhookURL
	}

	u, err := url.Parse(w.url)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid webhook url %q", w.url)
	}

	if w.secret == "" {
		return ErrNoSecret
	}

	return nil
}

// Compile-time check.
var _ Sink = (*Webhook)(nil)
