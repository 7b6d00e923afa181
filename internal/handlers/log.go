package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/serroba/storylog/internal/sink"
	"github.com/serroba/storylog/internal/storylog"
	"go.uber.org/zap"
)

const (
	allowedMethods   = "POST, OPTIONS"
	allowedHeaders   = "Content-Type"
	preflightMaxAge  = 600 * time.Second
	postOnly         = "POST only"
	skippedHoneypot  = "honeypot"
	cacheControlNone = "no-store"
)

// LogHandler validates story submissions, enriches them with request context
// and forwards them to the sink.
type LogHandler struct {
	sink   sink.Sink
	newID  storylog.IDGenerator
	now    func() time.Time
	logger *zap.Logger
}

// NewLogHandler creates a new log handler.
func NewLogHandler(
	s sink.Sink,
	newID storylog.IDGenerator,
	now func() time.Time,
	logger *zap.Logger,
) *LogHandler {
	return &LogHandler{
		sink:   s,
		newID:  newID,
		now:    now,
		logger: logger,
	}
}

// Preflight answers a CORS preflight for the calling origin.
func (h *LogHandler) Preflight(ctx context.Context, _ *struct{}) (*PreflightResponse, error) {
	meta := RequestMetaFromContext(ctx)

	resp := &PreflightResponse{}
	resp.AllowOrigin = meta.Origin
	resp.AllowMethods = allowedMethods
	resp.AllowHeaders = allowedHeaders
	resp.MaxAge = strconv.Itoa(int(preflightMaxAge.Seconds()))

	return resp, nil
}

// RejectMethod answers every method other than POST and OPTIONS without reading the body.
func (h *LogHandler) RejectMethod(_ context.Context, _ *struct{}) (*LogResponse, error) {
	resp := &LogResponse{Status: http.StatusMethodNotAllowed}
	resp.Body.Error = postOnly

	return resp, nil
}

// SubmitLog runs a submission through the honeypot and token checks, then forwards it to the sink.
func (h *LogHandler) SubmitLog(ctx context.Context, req *LogRequest) (*LogResponse, error) {
	requestID := RequestIDFromContext(ctx)
	sub := storylog.ParseSubmission(req.Payload)

	if sub.Honeypot() {
		h.logger.Info("honeypot tripped, dropping submission",
			zap.String("request_id", requestID),
		)

		resp := &LogResponse{Status: http.StatusOK}
		resp.Body.OK = true
		resp.Body.Skipped = skippedHoneypot

		return resp, nil
	}

	meta := RequestMetaFromContext(ctx)

	record, err := storylog.Build(sub, meta.Context(), h.now(), h.newID)
	if err != nil {
		h.logger.Debug("rejected submission",
			zap.String("request_id", requestID),
			zap.Error(err),
		)

		resp := &LogResponse{Status: http.StatusBadRequest}
		resp.Body.Error = err.Error()

		return resp, nil
	}

	if err = h.sink.Forward(ctx, record); err != nil {
		h.logger.Error("failed to forward event",
			zap.String("request_id", requestID),
			zap.String("event_id", record.Core.EventID),
			zap.String("token_id", record.Core.TokenID),
			zap.Error(err),
		)

		return upstreamFailure(err), nil
	}

	h.logger.Info("event forwarded",
		zap.String("request_id", requestID),
		zap.String("event_id", record.Core.EventID),
		zap.String("token_id", record.Core.TokenID),
	)

	resp := &LogResponse{Status: http.StatusOK}
	resp.CacheControl = cacheControlNone
	resp.AllowOrigin = meta.Origin
	resp.Body.OK = true

	return resp, nil
}

// upstreamFailure maps a forwarding error to a 502. Sink responses surface their
// raw body; transport failures surface the error text.
func upstreamFailure(err error) *LogResponse {
	text := err.Error()

	var upstreamErr *sink.UpstreamError
	if errors.As(err, &upstreamErr) {
		text = upstreamErr.Body
	}

	resp := &LogResponse{Status: http.StatusBadGateway}
	resp.Body.UpstreamError = &text

	return resp
}
