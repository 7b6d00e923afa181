package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/storylog/internal/handlers"
	"github.com/serroba/storylog/internal/storylog"
)

// Cloudflare visitor location headers.
const (
	headerConnectingIP = "CF-Connecting-IP"
	headerCity         = "CF-IPCity"
	headerCountry      = "CF-IPCountry"
	headerTimezone     = "CF-Timezone"
	headerLatitude     = "CF-IPLatitude"
	headerLongitude    = "CF-IPLongitude"
)

// RequestMeta is a middleware that adds client IP, headers, origin and edge geo data to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:       extractClientIP(ctx),
			UserAgent:      ctx.Header("User-Agent"),
			Referrer:       ctx.Header("Referer"),
			AcceptLanguage: ctx.Header("Accept-Language"),
			Origin:         extractOrigin(ctx),
			Geo:            extractGeo(ctx),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func extractClientIP(ctx huma.Context) string {
	// Edge-verified address wins
	if ip := ctx.Header(headerConnectingIP); ip != "" {
		return storylog.FirstHop(ip)
	}

	// X-Forwarded-For may contain multiple IPs, the first is the original client
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		return storylog.FirstHop(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to remote addr
	addr := ctx.RemoteAddr()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}

func extractOrigin(ctx huma.Context) string {
	host := ctx.Host()
	if host == "" {
		return ""
	}

	scheme := "http"
	if ctx.TLS() != nil {
		scheme = "https"
	}

	if proto := ctx.Header("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(storylog.FirstHop(proto))
	}

	return scheme + "://" + host
}

func extractGeo(ctx huma.Context) storylog.Geo {
	return storylog.Geo{
		City:      ctx.Header(headerCity),
		Country:   ctx.Header(headerCountry),
		Timezone:  ctx.Header(headerTimezone),
		Latitude:  ctx.Header(headerLatitude),
		Longitude: ctx.Header(headerLongitude),
	}
}
