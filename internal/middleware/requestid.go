package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/storylog/internal/handlers"
	"github.com/serroba/storylog/internal/storylog"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 64

// RequestID is a middleware that tags each request with an id, reusing a caller-supplied one when present.
func RequestID(_ huma.API, generate func() string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := storylog.Clamp(ctx.Header(HeaderRequestID), maxRequestIDLen)
		if id == "" {
			id = generate()
		}

		ctx.SetHeader(HeaderRequestID, id)

		newCtx := handlers.ContextWithRequestID(ctx.Context(), id)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}
