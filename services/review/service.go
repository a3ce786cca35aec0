package review

import (
	"fmt"

	"github.com/gorilla/mux"

	"nanofi-platform/api/pkg/clients/email"
	"nanofi-platform/api/pkg/httpx"
	"nanofi-platform/api/services/storage"
)

// Service handles the SPV side: listing submitted applications and
// recording approve/reject decisions. It depends on the Storage interface
// rather than a concrete implementation.
type Service struct {
	storage storage.Storage
	email   email.Client
}

// NewService creates a review Service with the given storage backend and
// notification client.
func NewService(store storage.Storage, emailClient email.Client) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("service: store cannot be nil")
	}
	if emailClient == nil {
		return nil, fmt.Errorf("service: email client cannot be nil")
	}
	return &Service{storage: store, email: emailClient}, nil
}

// LoadRoutes mounts the review endpoints on the parent router.
func (s *Service) LoadRoutes(parentRouter *mux.Router) {
	router := parentRouter.PathPrefix("/applications").Subrouter()
	router.StrictSlash(false)
	router.Use(httpx.RequestIDMiddleware, httpx.JSONMiddleware)

	router.HandleFunc("", s.HandleListApplications).Methods("GET")
	router.HandleFunc("/{id}", s.HandleGetApplication).Methods("GET")
	router.HandleFunc("/{id}/review", s.HandleDecide).Methods("POST")
}
