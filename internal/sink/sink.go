package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/serroba/storylog/internal/storylog"
)

var (
	ErrNoWebhookURL = errors.New("webhook url not configured")
	ErrNoSecret     = errors.New("shared secret not configured")
)

// Sink receives normalized records.
type Sink interface {
	Forward(ctx context.Context, record *storylog.Record) error
}

// UpstreamError reports a non-success response from the sink.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("sink responded %d: %s", e.StatusCode, e.Body)
}

// Payload is the wire body posted to the sink: core columns at the top level,
// the meta record as a JSON string, and the shared secret.
type Payload struct {
	storylog.Core
	MetaJSON string `json:"meta_json"`
	Secret   string `json:"_secret"`
}

// NewPayload flattens a record for the wire.
func NewPayload(record *storylog.Record, secret string) (*Payload, error) {
	meta, err := json.Marshal(record.Meta)
	if err != nil {
		return nil, fmt.Errorf("encode meta: %w", err)
	}

	return &Payload{
		Core:     record.Core,
		MetaJSON: string(meta),
		Secret:   secret,
	}, nil
}
