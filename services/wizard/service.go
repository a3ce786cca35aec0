package wizard

import (
	"fmt"

	"github.com/gorilla/mux"

	"nanofi-platform/api/pkg/httpx"
)

// Service handles HTTP requests for wizard sessions. It owns the live
// session store and depends on a Submitter for finalization, keeping the
// HTTP layer decoupled from persistence and the ledger stub.
type Service struct {
	sessions  *SessionStore
	finalizer Submitter
}

// NewService creates a wizard Service around a session store and a
// finalizer.
func NewService(sessions *SessionStore, finalizer Submitter) (*Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("service: session store cannot be nil")
	}
	if finalizer == nil {
		return nil, fmt.Errorf("service: finalizer cannot be nil")
	}
	return &Service{sessions: sessions, finalizer: finalizer}, nil
}

// LoadRoutes mounts the wizard endpoints on the parent router.
func (s *Service) LoadRoutes(parentRouter *mux.Router) {
	router := parentRouter.NewRoute().Subrouter()
	router.StrictSlash(false)
	router.Use(httpx.RequestIDMiddleware, httpx.JSONMiddleware)

	router.HandleFunc("/wizards/{kind}/sessions", s.HandleCreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", s.HandleGetSession).Methods("GET")
	router.HandleFunc("/sessions/{id}", s.HandleAbandonSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/data", s.HandleUpdateData).Methods("PUT")
	router.HandleFunc("/sessions/{id}/next", s.HandleNext).Methods("POST")
	router.HandleFunc("/sessions/{id}/previous", s.HandlePrevious).Methods("POST")
	router.HandleFunc("/sessions/{id}/submit", s.HandleSubmit).Methods("POST")
}
