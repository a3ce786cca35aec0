package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestId"

// RequestID extracts the request id injected by RequestIDMiddleware.
func RequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// RequestIDMiddleware tags every request with a uuid so log lines from one
// request can be correlated.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// JSONMiddleware sets the Content-Type header to application/json.
func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// WriteJSON writes payload with the given status, logging (but not
// surfacing) encode failures since the status line is already gone.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// WriteError writes a structured JSON error with a machine-readable code
// and a human-readable message. The code lets clients distinguish error
// types programmatically (e.g. retry on INTERNAL_ERROR, not on NOT_FOUND).
func WriteError(w http.ResponseWriter, errCode, message string, status int) {
	WriteJSON(w, status, map[string]any{"code": errCode, "message": message})
}
