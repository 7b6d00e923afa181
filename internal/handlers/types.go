package handlers

import (
	"io"

	"github.com/danielgtaylor/huma/v2"
)

// maxSubmissionBytes bounds how much of the body is read.
const maxSubmissionBytes = 1 << 20

// LogRequest carries the raw submission body. The body is read as-is and decoded
// leniently by the handler, so malformed or empty JSON never fails the request.
type LogRequest struct {
	Payload []byte
}

// Resolve reads the body without handing it to huma's validation.
func (r *LogRequest) Resolve(ctx huma.Context) []error {
	body := ctx.BodyReader()
	if body == nil {
		return nil
	}

	// A short or failed read degrades to an empty submission.
	r.Payload, _ = io.ReadAll(io.LimitReader(body, maxSubmissionBytes))

	return nil
}

// LogResponseBody is the JSON envelope returned by the log endpoint.
type LogResponseBody struct {
	OK            bool    `doc:"Whether the submission was accepted"         json:"ok"`
	Skipped       string  `doc:"Set when the submission was dropped"         json:"skipped,omitempty"        example:"honeypot"`
	Error         string  `doc:"Validation or method error code"             json:"error,omitempty"          example:"TOKEN_ID_REQUIRED"`
	UpstreamError *string `doc:"Raw error text returned by the storage sink" json:"upstream_error,omitempty"`
}

// LogResponse is the response for the log endpoint.
type LogResponse struct {
	Status       int
	CacheControl string `doc:"Caching directive"                   header:"Cache-Control"`
	AllowOrigin  string `doc:"Origin allowed to read the response" header:"Access-Control-Allow-Origin"`
	Body         LogResponseBody
}

// PreflightResponse answers a CORS preflight for the log endpoint.
type PreflightResponse struct {
	AllowOrigin  string `header:"Access-Control-Allow-Origin"`
	AllowMethods string `header:"Access-Control-Allow-Methods"`
	AllowHeaders string `header:"Access-Control-Allow-Headers"`
	MaxAge       string `header:"Access-Control-Max-Age"`
}

// Compile-time check.
var _ huma.Resolver = (*LogRequest)(nil)
