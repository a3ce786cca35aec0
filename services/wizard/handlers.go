package wizard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"nanofi-platform/api/pkg/httpx"
	"nanofi-platform/api/services/forms"
)

// maxRequestBody limits the size of mutating request bodies.
const maxRequestBody = 1 << 20 // 1MB

// HandleCreateSession starts a new wizard session of the requested kind.
// The submitter identity travels in the body; there is no ambient auth
// context by design.
func (s *Service) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)
	kind := mux.Vars(r)["kind"]

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var body struct {
		SubmittedBy string `json:"submittedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Warn("failed to decode create-session body", "kind", kind, "requestId", rid, "error", err)
		httpx.WriteError(w, "INVALID_BODY", "invalid request body", http.StatusBadRequest)
		return
	}
	if body.SubmittedBy == "" {
		httpx.WriteError(w, "INVALID_BODY", "submittedBy is required", http.StatusBadRequest)
		return
	}

	wz, err := forms.Lookup(kind)
	if err != nil {
		slog.Warn("unknown wizard kind", "kind", kind, "requestId", rid)
		httpx.WriteError(w, "NOT_FOUND", "unknown wizard kind", http.StatusNotFound)
		return
	}

	session := NewSession(wz, body.SubmittedBy)
	s.sessions.Add(session)

	slog.Info("wizard session created", "sessionId", session.ID, "kind", kind, "requestId", rid)
	httpx.WriteJSON(w, http.StatusCreated, session.View())
}

// HandleGetSession returns the session's current state: step position,
// progress, completed sections, and the visible surface of the current
// section.
func (s *Service) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session.View())
}

// HandleAbandonSession discards a session and all its progress.
func (s *Service) HandleAbandonSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	s.sessions.Remove(session.ID)
	slog.Info("wizard session abandoned", "sessionId", session.ID, "requestId", httpx.RequestID(r))
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateData applies field edits to the current section and returns
// the refreshed state, including per-field errors for inline display.
func (s *Service) HandleUpdateData(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Warn("failed to decode data body", "sessionId", session.ID, "requestId", rid, "error", err)
		httpx.WriteError(w, "INVALID_BODY", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := session.UpdateData(forms.Values(body.Data)); err != nil {
		s.writeSessionError(w, session.ID, rid, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session.View())
}

// HandleNext advances the wizard one section. A blocked transition is a
// business-level outcome surfaced as 409 with SECTION_INCOMPLETE; the user
// retries the same action after fixing the fields.
func (s *Service) HandleNext(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	if err := session.Next(); err != nil {
		s.writeSessionError(w, session.ID, rid, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session.View())
}

// HandlePrevious steps back one section, unconditionally except at the
// first section.
func (s *Service) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	if err := session.Previous(); err != nil {
		s.writeSessionError(w, session.ID, rid, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session.View())
}

// HandleSubmit finalizes the session. Transient finalizer failures leave
// the answer map intact, so the client may offer a manual retry.
func (s *Service) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	rid := httpx.RequestID(r)
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	receipt, err := session.Submit(r.Context(), s.finalizer)
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmitInFlight),
			errors.Is(err, ErrAlreadySubmitted),
			errors.Is(err, ErrNotAtFinalSection):
			s.writeSessionError(w, session.ID, rid, err)
		case errors.Is(err, ErrEmptyAnswers):
			slog.Warn("submission rejected", "sessionId", session.ID, "requestId", rid, "error", err)
			httpx.WriteError(w, "INVALID_SUBMISSION", err.Error(), http.StatusUnprocessableEntity)
		default:
			slog.Error("submission failed", "sessionId", session.ID, "requestId", rid, "error", err)
			httpx.WriteError(w, "SUBMIT_FAILED", "submission failed, please try again", http.StatusBadGateway)
		}
		return
	}

	slog.Info("wizard session submitted", "sessionId", session.ID, "applicationId", receipt.ApplicationID, "requestId", rid)
	httpx.WriteJSON(w, http.StatusOK, receipt)
}

// lookupSession resolves the {id} path variable; on failure it writes the
// error response and reports false.
func (s *Service) lookupSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	rid := httpx.RequestID(r)
	raw := mux.Vars(r)["id"]

	id, err := uuid.Parse(raw)
	if err != nil {
		slog.Warn("invalid session id", "id", raw, "requestId", rid, "error", err)
		httpx.WriteError(w, "INVALID_ID", "invalid session id", http.StatusBadRequest)
		return nil, false
	}

	session, ok := s.sessions.Get(id)
	if !ok {
		slog.Warn("session not found", "id", id, "requestId", rid)
		httpx.WriteError(w, "NOT_FOUND", "session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// writeSessionError maps orchestrator outcomes to HTTP codes.
func (s *Service) writeSessionError(w http.ResponseWriter, sessionID uuid.UUID, rid string, err error) {
	slog.Debug("session operation blocked", "sessionId", sessionID, "requestId", rid, "error", err)
	switch {
	case errors.Is(err, ErrSectionIncomplete):
		httpx.WriteError(w, "SECTION_INCOMPLETE", err.Error(), http.StatusConflict)
	case errors.Is(err, ErrAtFirstSection), errors.Is(err, ErrAtLastSection), errors.Is(err, ErrNotAtFinalSection):
		httpx.WriteError(w, "INVALID_TRANSITION", err.Error(), http.StatusConflict)
	case errors.Is(err, ErrSubmitInFlight):
		httpx.WriteError(w, "SUBMIT_IN_FLIGHT", err.Error(), http.StatusConflict)
	case errors.Is(err, ErrAlreadySubmitted):
		httpx.WriteError(w, "ALREADY_SUBMITTED", err.Error(), http.StatusConflict)
	default:
		httpx.WriteError(w, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
