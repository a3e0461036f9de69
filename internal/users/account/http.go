// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/terralens/terralens/internal/platform/request"
	"github.com/terralens/terralens/internal/platform/respond"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/internal/platform/validate"
	"github.com/terralens/terralens/pkg/pagination"
)

// # HTTP Handler

// Handler exposes the administrative user-management endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new account Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the user-management endpoints on the given router.
// The router is expected to be gated to administrators.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Delete("/{id}", handler.Delete)
}

// # Requests

type createRequest struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	OrganizationID *string `json:"organization_id"`
	Language       string  `json:"language"`
	Timezone       string  `json:"timezone"`
}

func (request *createRequest) Validate() error {
	v := &validate.Validator{}
	v.Required("email", request.Email).
		Email("email", request.Email).
		Required("password", request.Password).
		MinLen("password", request.Password, 12).
		Required("name", request.Name).
		MaxLen("name", request.Name, 120).
		OneOf("role", request.Role, string(sec.RoleAdmin), string(sec.RoleUser))

	if request.OrganizationID != nil && *request.OrganizationID != "" {
		v.UUID("organization_id", *request.OrganizationID)
	}

	return v.Err()
}

// # Endpoints

// List handles GET /users.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	filter := ListFilter{
		OrganizationID: request.URL.Query().Get("organization_id"),
		Role:           request.URL.Query().Get("role"),
	}

	accounts, meta, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, meta)
}

// Create handles POST /users.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	payload := &createRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := payload.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		Email:          payload.Email,
		Password:       payload.Password,
		Name:           payload.Name,
		Role:           sec.Role(payload.Role),
		OrganizationID: payload.OrganizationID,
		Language:       payload.Language,
		Timezone:       payload.Timezone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// Delete handles DELETE /users/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), identity.ID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
