// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package organization

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terralens/terralens/internal/platform/middleware"
	requestutil "github.com/terralens/terralens/internal/platform/request"
	"github.com/terralens/terralens/internal/platform/respond"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/pkg/pagination"
)

// # HTTP Handler

// Handler exposes the organization endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new organization Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the organization endpoints on the given router.
// Reading a single organization is open to any authenticated user (scoped to
// their own tenant); everything else is administrator only.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/{id}", handler.Get)

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireRoles(sec.RoleAdmin))
		router.Get("/", handler.List)
		router.Post("/", handler.Create)
		router.Patch("/{id}", handler.Update)
		router.Delete("/{id}", handler.Delete)
	})
}

// # Requests

type createRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Website      *string `json:"website"`
	ContactEmail *string `json:"contact_email"`
	Country      *string `json:"country"`
}

type updateRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Website      *string `json:"website"`
	ContactEmail *string `json:"contact_email"`
	Country      *string `json:"country"`
}

// # Endpoints

// List handles GET /organizations.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{Query: request.URL.Query().Get("q")}

	organizations, meta, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, organizations, meta)
}

// Get handles GET /organizations/{id}. Accepts a UUID or a slug.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), identity, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// Create handles POST /organizations.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	payload := &createRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created := &Organization{
		Name:         payload.Name,
		Description:  payload.Description,
		Website:      payload.Website,
		ContactEmail: payload.ContactEmail,
		Country:      payload.Country,
	}

	if err := handler.service.Create(request.Context(), created); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// Update handles PATCH /organizations/{id}.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	payload := &updateRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		Name:         payload.Name,
		Description:  payload.Description,
		Website:      payload.Website,
		ContactEmail: payload.ContactEmail,
		Country:      payload.Country,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// Delete handles DELETE /organizations/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
