package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// LogPath is the single API endpoint accepting story submissions.
const LogPath = "/api/log"

// rejectedMethods get an explicit 405 on the log endpoint.
var rejectedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// RegisterRoutes registers the log endpoint operations.
func RegisterRoutes(api huma.API, logHandler *LogHandler) {
	// POST /api/log - Submit a story
	huma.Register(api, huma.Operation{
		OperationID: "submit-log",
		Method:      http.MethodPost,
		Path:        LogPath,
		Summary:     "Submit a story",
		Description: "Validates a story submission, enriches it with request context and forwards it to the sheet.",
		Tags:        []string{"Log"},
	}, logHandler.SubmitLog)

	// OPTIONS /api/log - CORS preflight
	huma.Register(api, huma.Operation{
		OperationID:   "preflight-log",
		Method:        http.MethodOptions,
		Path:          LogPath,
		Summary:       "CORS preflight",
		Tags:          []string{"Log"},
		DefaultStatus: http.StatusNoContent,
	}, logHandler.Preflight)

	for _, method := range rejectedMethods {
		huma.Register(api, huma.Operation{
			OperationID: "reject-log-" + strings.ToLower(method),
			Method:      method,
			Path:        LogPath,
			Summary:     "Method not allowed",
			Tags:        []string{"Log"},
			Hidden:      true,
		}, logHandler.RejectMethod)
	}
}

// NewConfig returns the huma configuration for the service. Schema links are
// disabled so response bodies carry only the documented envelope.
func NewConfig(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	cfg.CreateHooks = nil

	return cfg
}

// MethodNotAllowed answers methods the router has no operation for. The log
// endpoint gets the JSON 405 envelope; every other path goes to fallback.
func MethodNotAllowed(fallback http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != LogPath {
			fallback.ServeHTTP(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(LogResponseBody{Error: postOnly})
	}
}
