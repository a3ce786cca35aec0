package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"nanofi-platform/api/pkg/clients/email"
	"nanofi-platform/api/pkg/httpx"
	"nanofi-platform/api/services/storage"
)

const maxRequestBody = 1 << 20 // 1MB

// HandleListApplications returns every submitted application, newest
// first, for the SPV dashboard.
func (s *Service) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)

	apps, err := s.storage.ListApplications(r.Context())
	if err != nil {
		slog.Error("failed to list applications", "requestId", rid, "error", err)
		httpx.WriteError(w, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

// HandleGetApplication returns one application with its full form data.
func (s *Service) HandleGetApplication(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)

	id, ok := parseID(w, r, rid)
	if !ok {
		return
	}

	app, err := s.storage.GetApplication(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Warn("application not found", "id", id, "requestId", rid)
			httpx.WriteError(w, "NOT_FOUND", "application not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to get application", "id", id, "requestId", rid, "error", err)
		httpx.WriteError(w, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, app)
}

// HandleDecide records an approve/reject decision. A reason is mandatory
// for reject and optional for approve. Terminal states are final: deciding
// an already-reviewed application is a 409, and the original decision is
// never overwritten.
func (s *Service) HandleDecide(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)

	id, ok := parseID(w, r, rid)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var body struct {
		Decision string `json:"decision"`
		Reviewer string `json:"reviewer"`
		Reason   string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Warn("failed to decode decision body", "id", id, "requestId", rid, "error", err)
		httpx.WriteError(w, "INVALID_BODY", "invalid request body", http.StatusBadRequest)
		return
	}

	status := storage.Status(body.Decision)
	if status != storage.StatusApproved && status != storage.StatusRejected {
		httpx.WriteError(w, "INVALID_BODY", "decision must be approved or rejected", http.StatusBadRequest)
		return
	}
	if body.Reviewer == "" {
		httpx.WriteError(w, "INVALID_BODY", "reviewer is required", http.StatusBadRequest)
		return
	}
	if status == storage.StatusRejected && body.Reason == "" {
		httpx.WriteError(w, "INVALID_BODY", "a reason is required to reject", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	app, err := s.storage.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Warn("application not found for review", "id", id, "requestId", rid)
			httpx.WriteError(w, "NOT_FOUND", "application not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to load application for review", "id", id, "requestId", rid, "error", err)
		httpx.WriteError(w, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	updated, err := s.storage.UpdateStatus(ctx, id, status, body.Reviewer, body.Reason)
	if err != nil {
		slog.Error("failed to update status", "id", id, "requestId", rid, "error", err)
		httpx.WriteError(w, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	if !updated {
		// The record exists but is no longer pending.
		slog.Warn("application already reviewed", "id", id, "status", app.Status, "requestId", rid)
		httpx.WriteError(w, "ALREADY_REVIEWED", "application has already been reviewed", http.StatusConflict)
		return
	}

	if _, err := s.email.Send(ctx, email.Message{
		To:      app.SubmittedBy,
		Subject: fmt.Sprintf("Your %s application was %s", app.Kind, status),
		Body:    body.Reason,
	}); err != nil {
		slog.Warn("failed to send decision notice", "id", id, "requestId", rid, "error", err)
	}

	slog.Info("application reviewed", "id", id, "decision", status, "reviewer", body.Reviewer, "requestId", rid)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"id":       id,
		"status":   status,
		"reviewer": body.Reviewer,
	})
}

func parseID(w http.ResponseWriter, r *http.Request, rid string) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		slog.Warn("invalid application id", "id", raw, "requestId", rid, "error", err)
		httpx.WriteError(w, "INVALID_ID", "invalid application id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
