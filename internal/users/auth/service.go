// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/sec"
)

// # Service

// Service orchestrates login, logout and session resolution.
type Service struct {
	accounts       AccountRepository
	sessions       SessionRepository
	impersonations ImpersonationRepository
	tokens         *sec.TokenService
	logger         *slog.Logger
}

// NewService creates a new auth Service.
func NewService(
	accounts AccountRepository,
	sessions SessionRepository,
	impersonations ImpersonationRepository,
	tokens *sec.TokenService,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:       accounts,
		sessions:       sessions,
		impersonations: impersonations,
		tokens:         tokens,
		logger:         logger,
	}
}

// LoginResult bundles the minted session token with the authenticated
// identity and the path the client should land on.
type LoginResult struct {
	Token       string        `json:"-"`
	Identity    *sec.Identity `json:"user"`
	LandingPath string        `json:"landing_path"`
}

/*
Login verifies credentials and opens a fresh session slot.

Description: Credential failures are reported uniformly as Unauthorized so a
caller cannot distinguish an unknown email from a wrong password.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *LoginResult: Session token, identity and landing path
  - error: apperr.Unauthorized on bad credentials
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	account, err := service.accounts.FindByEmail(context, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	sessionID, err := sec.GenerateSecureToken(SessionIDLength)
	if err != nil {
		return nil, fmt.Errorf("auth_session_id_generation_failed: %w", err)
	}

	identity := account.Identity()
	if err := service.sessions.Create(context, sessionID, identity, SessionTTL); err != nil {
		return nil, fmt.Errorf("auth_session_create_failed: %w", err)
	}

	token, err := service.tokens.MintSessionToken(sessionID, account.ID, SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_token_mint_failed: %w", err)
	}

	service.logger.Info("auth_login_succeeded",
		slog.String(FieldUserID, account.ID),
	)

	return &LoginResult{
		Token:       token,
		Identity:    identity,
		LandingPath: LandingPath(identity),
	}, nil
}

/*
Logout closes the session behind a cookie token.

Description: Idempotent. An invalid or already-expired token is treated as a
completed logout. Any active impersonation record is discarded together with
the session slot.

Parameters:
  - context: context.Context
  - cookieToken: string

Returns:
  - error: Persistence failures only
*/
func (service *Service) Logout(context context.Context, cookieToken string) error {
	claims, err := service.tokens.VerifySessionToken(cookieToken)
	if err != nil {
		return nil
	}

	if err := service.impersonations.Delete(context, claims.SessionID); err != nil {
		return fmt.Errorf("auth_impersonation_cleanup_failed: %w", err)
	}

	if err := service.sessions.Delete(context, claims.SessionID); err != nil {
		return fmt.Errorf("auth_session_delete_failed: %w", err)
	}

	service.logger.Info("auth_logout_succeeded",
		slog.String(FieldUserID, claims.UserID),
	)

	return nil
}

/*
ResolveSession maps a cookie token to the identity occupying its slot.

Description: Satisfies middleware.SessionResolver. The identity returned is
whatever the slot currently holds — during impersonation that is the
impersonated user, not the admin who opened the session.

Parameters:
  - context: context.Context
  - cookieToken: string

Returns:
  - *sec.Identity: Effective identity
  - error: apperr.Unauthorized for invalid tokens, apperr.NotFound for expired slots
*/
func (service *Service) ResolveSession(context context.Context, cookieToken string) (*sec.Identity, error) {
	claims, err := service.tokens.VerifySessionToken(cookieToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid session token")
	}

	return service.sessions.Find(context, claims.SessionID)
}

/*
SessionID extracts the verified session identifier from a cookie token.

Parameters:
  - cookieToken: string

Returns:
  - string: Session identifier
  - error: apperr.Unauthorized for invalid tokens
*/
func (service *Service) SessionID(cookieToken string) (string, error) {
	claims, err := service.tokens.VerifySessionToken(cookieToken)
	if err != nil {
		return "", apperr.Unauthorized("Invalid session token")
	}

	return claims.SessionID, nil
}
