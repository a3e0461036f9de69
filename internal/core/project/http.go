// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/terralens/terralens/internal/platform/request"
	"github.com/terralens/terralens/internal/platform/respond"
	"github.com/terralens/terralens/pkg/pagination"
)

// # HTTP Handler

// Handler exposes the project endpoints. All routes require an authenticated
// session; tenant scoping happens in the service.
type Handler struct {
	service *Service
}

// NewHandler creates a new project Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the project endpoints on the given router.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/themes", handler.Themes)

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/{id}", handler.Get)
	router.Patch("/{id}", handler.Update)
	router.Delete("/{id}", handler.Delete)
	router.Get("/{id}/status-log", handler.StatusLog)
}

// # Requests

type createRequest struct {
	OrganizationID string   `json:"organization_id"`
	Name           string   `json:"name"`
	Theme          string   `json:"theme"`
	Description    *string  `json:"description"`
	AreaHectares   *float64 `json:"area_hectares"`
	Country        *string  `json:"country"`
}

type updateRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	AreaHectares *float64 `json:"area_hectares"`
	Country      *string  `json:"country"`
	Status       *string  `json:"status"`
	StatusNote   *string  `json:"status_note"`
}

// # Endpoints

// Themes handles GET /projects/themes. The descriptor list is fixed, so no
// authentication or tenant scoping applies.
func (handler *Handler) Themes(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Themes())
}

// List handles GET /projects.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		OrganizationID: request.URL.Query().Get("organization_id"),
		Theme:          Theme(request.URL.Query().Get("theme")),
		Status:         Status(request.URL.Query().Get("status")),
		Query:          request.URL.Query().Get("q"),
	}

	projects, meta, err := handler.service.List(request.Context(), identity, filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, projects, meta)
}

// Get handles GET /projects/{id}.
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

// Create handles POST /projects.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload := &createRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), identity, CreateInput{
		OrganizationID: payload.OrganizationID,
		Name:           payload.Name,
		Theme:          Theme(payload.Theme),
		Description:    payload.Description,
		AreaHectares:   payload.AreaHectares,
		Country:        payload.Country,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// Update handles PATCH /projects/{id}.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload := &updateRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{
		Name:         payload.Name,
		Description:  payload.Description,
		AreaHectares: payload.AreaHectares,
		Country:      payload.Country,
		StatusNote:   payload.StatusNote,
	}
	if payload.Status != nil {
		status := Status(*payload.Status)
		input.Status = &status
	}

	updated, err := handler.service.Update(request.Context(), identity, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// Delete handles DELETE /projects/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), identity, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// StatusLog handles GET /projects/{id}/status-log.
func (handler *Handler) StatusLog(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.StatusLog(request.Context(), identity, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}
