// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/constants"
	requestutil "github.com/terralens/terralens/internal/platform/request"
	"github.com/terralens/terralens/internal/platform/respond"
	"github.com/terralens/terralens/internal/platform/validate"
)

// # HTTP Handler

// Handler exposes authentication and impersonation endpoints.
type Handler struct {
	service       *Service
	impersonator  *Impersonator
	secureCookies bool
}

// NewHandler creates a new auth Handler. secureCookies should be true in
// every environment served over TLS.
func NewHandler(service *Service, impersonator *Impersonator, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		impersonator:  impersonator,
		secureCookies: secureCookies,
	}
}

// Routes registers the auth endpoints on the given router.
func (handler *Handler) Routes(router chi.Router) {
	router.Post("/login", handler.Login)
	router.Put("/logout", handler.Logout)
	router.Get("/me", handler.Me)

	router.Route("/impersonation", func(router chi.Router) {
		router.Get("/", handler.GetImpersonation)
		router.Post("/", handler.StartImpersonation)
		router.Delete("/", handler.EndImpersonation)
	})
}

// # Requests

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (request *loginRequest) Validate() error {
	v := &validate.Validator{}
	return v.
		Required(FieldEmail, request.Email).
		Email(FieldEmail, request.Email).
		Required(FieldPassword, request.Password).
		Err()
}

type startImpersonationRequest struct {
	OrganizationID string `json:"organization_id"`
	UserID         string `json:"user_id"`
}

func (request *startImpersonationRequest) Validate() error {
	v := &validate.Validator{}
	v.Required(FieldUserID, request.UserID).
		UUID(FieldUserID, request.UserID)

	if request.OrganizationID != "" {
		v.UUID(FieldOrganizationID, request.OrganizationID)
	}

	return v.Err()
}

// # Endpoints

/*
Login handles POST /auth/login.

Description: On success the session token is delivered as an HTTP-only
cookie; the body carries the identity and landing path.
*/
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	payload := &loginRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := payload.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.Token, int(SessionTTL.Seconds()))
	respond.OK(writer, map[string]any{
		FieldSuccess:     true,
		FieldUser:        result.Identity,
		FieldLandingPath: result.LandingPath,
	})
}

/*
Logout handles PUT /auth/logout.

Description: Always clears the cookie and reports success, even when the
session was already gone.
*/
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.setSessionCookie(writer, "", -1)
	respond.OK(writer, map[string]any{FieldSuccess: true})
}

/*
Me handles GET /auth/me.

Description: Returns the effective identity of the current session. During
impersonation the effective identity is the impersonated user and the
response additionally carries the impersonation state.
*/
func (handler *Handler) Me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := map[string]any{FieldUser: identity}

	if sessionID, ok := handler.sessionID(request); ok {
		record, err := handler.impersonator.Get(request.Context(), sessionID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		if record != nil {
			body["impersonation"] = record
		}
	}

	respond.OK(writer, body)
}

// GetImpersonation handles GET /auth/impersonation.
func (handler *Handler) GetImpersonation(writer http.ResponseWriter, request *http.Request) {
	sessionID, ok := handler.sessionID(request)
	if !ok {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	record, err := handler.impersonator.Get(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"active": record != nil, "impersonation": record})
}

/*
StartImpersonation handles POST /auth/impersonation.

Description: Administrator only. A non-admin caller receives Forbidden and
the session slot is left untouched.
*/
func (handler *Handler) StartImpersonation(writer http.ResponseWriter, request *http.Request) {
	sessionID, ok := handler.sessionID(request)
	if !ok {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	payload := &startImpersonationRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := payload.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.impersonator.Start(request.Context(), sessionID, payload.OrganizationID, payload.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

// EndImpersonation handles DELETE /auth/impersonation.
func (handler *Handler) EndImpersonation(writer http.ResponseWriter, request *http.Request) {
	sessionID, ok := handler.sessionID(request)
	if !ok {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	restored, err := handler.impersonator.End(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUser:        restored,
		FieldLandingPath: LandingPath(restored),
	})
}

// # Helpers

// sessionID extracts the verified session identifier from the request cookie.
func (handler *Handler) sessionID(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return "", false
	}

	sessionID, err := handler.service.SessionID(cookie.Value)
	if err != nil {
		return "", false
	}

	return sessionID, true
}

// setSessionCookie writes or clears the session cookie.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
