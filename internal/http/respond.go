package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mhzindev/sunsetflow/internal/core"
)

// errorBody is the JSON error envelope. Detail is only filled for
// kinds the user can act on; internal failures stay opaque.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeError maps the error taxonomy onto HTTP statuses. Untagged
// errors fall through to transient and are reported as 503 so the
// client knows a retry can help.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := core.KindOf(err)

	status := http.StatusServiceUnavailable
	switch kind {
	case core.KindValidation:
		status = http.StatusUnprocessableEntity
	case core.KindPermission:
		status = http.StatusForbidden
	case core.KindNotFound:
		status = http.StatusNotFound
	case core.KindConsistency:
		status = http.StatusConflict
	}

	body := errorBody{Kind: string(kind)}
	var tagged *core.Error
	if errors.As(err, &tagged) {
		body.Error = tagged.Title
		if kind != core.KindTransient {
			body.Detail = tagged.Detail
		}
	} else {
		body.Error = "internal error"
	}

	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

// created answers a successful creation with the new id.
func created(w http.ResponseWriter, id string) {
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
