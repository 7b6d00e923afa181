package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// Checker defines the interface for checking a dependency's readiness.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check operations.
type Handler struct {
	sink   Checker
	logger *zap.Logger
}

// NewHandler creates a new health handler.
func NewHandler(sink Checker, logger *zap.Logger) *Handler {
	return &Handler{sink: sink, logger: logger}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Sink   string `json:"sink"`
	}
}

// Check performs a health check of the application and its dependencies.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.sink.Ping(ctx); err != nil {
		h.logger.Warn("sink not ready", zap.Error(err))

		resp.Body.Sink = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Sink = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
