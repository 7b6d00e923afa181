package handlers_test

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/storylog/internal/storylog"
)

var errMock = errors.New("mock error")

var fixedNow = time.Date(2026, 10, 19, 8, 30, 15, 0, time.UTC)

// mockSink is a test double for sink.Sink that records forwarded events.
type mockSink struct {
	forwardErr error
	forwarded  []*storylog.Record
}

func (m *mockSink) Forward(_ context.Context, record *storylog.Record) error {
	m.forwarded = append(m.forwarded, record)

	return m.forwardErr
}

func fixedClock() time.Time { return fixedNow }
