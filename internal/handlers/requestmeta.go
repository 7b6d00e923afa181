package handlers

import (
	"context"

	"github.com/serroba/storylog/internal/storylog"
)

type requestMetaKey struct{}

type requestIDKey struct{}

// RequestMeta holds transport-derived request metadata.
type RequestMeta struct {
	ClientIP       string
	UserAgent      string
	Referrer       string
	AcceptLanguage string
	// Origin is the scheme and host the request was addressed to.
	Origin string
	Geo    storylog.Geo
}

// Context converts the metadata into the enrichment input for a record.
func (m RequestMeta) Context() storylog.Context {
	return storylog.Context{
		ClientIP:       m.ClientIP,
		UserAgent:      m.UserAgent,
		Referer:        m.Referrer,
		AcceptLanguage: m.AcceptLanguage,
		Geo:            m.Geo,
	}
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

// ContextWithRequestID adds the request id to context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext extracts the request id from context, or "" when unset.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}

	return ""
}
