// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/sec"
)

// # Impersonation

// ImpersonationRecord snapshots an admin session while it borrows another
// user's identity. OriginalIdentity keeps the exact bytes that occupied the
// session slot so ending impersonation restores it without re-encoding.
type ImpersonationRecord struct {
	Active           bool            `json:"active"`
	OriginalIdentity json.RawMessage `json:"original_identity"`
	UserID           string          `json:"user_id"`
	OrganizationID   string          `json:"organization_id"`
	OrganizationName string          `json:"organization_name"`
	StartedAt        time.Time       `json:"started_at"`
}

/*
OrganizationDirectory resolves organization display names for the
impersonation banner.
*/
type OrganizationDirectory interface {
	/*
		FindName returns the display name of an organization.

		Parameters:
		  - context: context.Context
		  - organizationID: string

		Returns:
		  - string: Display name, empty when unknown
		  - error: Database errors
	*/
	FindName(context context.Context, organizationID string) (string, error)
}

// Impersonator lets an administrator temporarily act as another user by
// overwriting the session slot, and later restore the original identity.
type Impersonator struct {
	accounts       AccountRepository
	sessions       SessionRepository
	impersonations ImpersonationRepository
	organizations  OrganizationDirectory
	logger         *slog.Logger
}

// NewImpersonator creates a new Impersonator.
func NewImpersonator(
	accounts AccountRepository,
	sessions SessionRepository,
	impersonations ImpersonationRepository,
	organizations OrganizationDirectory,
	logger *slog.Logger,
) *Impersonator {
	return &Impersonator{
		accounts:       accounts,
		sessions:       sessions,
		impersonations: impersonations,
		organizations:  organizations,
		logger:         logger,
	}
}

/*
Start begins impersonating the given user within the caller's session.

Description: The caller must currently be an administrator and not already
impersonating. All checks run before any state changes, so a rejected start
leaves both the session slot and the impersonation record untouched. The
original slot bytes are snapshotted verbatim before the overwrite.

Parameters:
  - context: context.Context
  - sessionID: string
  - organizationID: string (empty derives the organization from the target)
  - targetUserID: string

Returns:
  - *ImpersonationRecord: The active record
  - error: apperr.Forbidden for non-admin callers, apperr.Conflict for nested starts, apperr.NotFound for unknown targets
*/
func (impersonator *Impersonator) Start(context context.Context, sessionID, organizationID, targetUserID string) (*ImpersonationRecord, error) {
	snapshot, err := impersonator.sessions.FindRaw(context, sessionID)
	if err != nil {
		return nil, err
	}

	original := &sec.Identity{}
	if err := json.Unmarshal(snapshot, original); err != nil {
		return nil, fmt.Errorf("impersonation_identity_decode_failed: %w", err)
	}

	if !original.IsAdmin() {
		return nil, apperr.Forbidden("Only administrators can impersonate users")
	}

	if _, err := impersonator.impersonations.Find(context, sessionID); err == nil {
		return nil, apperr.Conflict("An impersonation is already active for this session")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	target, err := impersonator.accounts.FindByID(context, targetUserID)
	if err != nil {
		return nil, err
	}

	// Only customer users can be impersonated. An administrator target looks
	// missing, the same as an unknown user id.
	if !sec.HasRole(target.Roles, sec.RoleUser) {
		return nil, apperr.NotFound("Account")
	}

	// A target outside the requested organization looks missing, the same as
	// an unknown user id.
	if organizationID != "" {
		if target.OrganizationID == nil || *target.OrganizationID != organizationID {
			return nil, apperr.NotFound("Account")
		}
	} else if target.OrganizationID != nil {
		organizationID = *target.OrganizationID
	}

	organizationName := ""
	if organizationID != "" {
		organizationName, err = impersonator.organizations.FindName(context, organizationID)
		if err != nil {
			return nil, err
		}
	}

	record := &ImpersonationRecord{
		Active:           true,
		OriginalIdentity: snapshot,
		UserID:           target.ID,
		OrganizationID:   organizationID,
		OrganizationName: organizationName,
		StartedAt:        time.Now().UTC(),
	}

	if err := impersonator.impersonations.Set(context, sessionID, record); err != nil {
		return nil, fmt.Errorf("impersonation_record_persist_failed: %w", err)
	}

	// The slot receives a synthesized customer identity with exactly the USER
	// role, regardless of any extra roles the target account carries.
	impersonated := target.Identity()
	impersonated.Roles = []sec.Role{sec.RoleUser}

	if err := impersonator.sessions.Overwrite(context, sessionID, impersonated); err != nil {
		// Roll the record back so the session is not left half-switched.
		_ = impersonator.impersonations.Delete(context, sessionID)
		return nil, fmt.Errorf("impersonation_slot_switch_failed: %w", err)
	}

	impersonator.logger.Info("impersonation_started",
		slog.String("admin_user_id", original.ID),
		slog.String("target_user_id", target.ID),
	)

	return record, nil
}

/*
End restores the original identity and removes the impersonation record.

Description: The snapshot bytes are written back to the session slot exactly
as captured at start, so the restored identity is byte-for-byte identical to
the pre-impersonation one. Ending without an active impersonation is a no-op:
the slot already holds the original identity, which is returned unchanged.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *sec.Identity: The restored (or already current) identity
  - error: Persistence failures
*/
func (impersonator *Impersonator) End(context context.Context, sessionID string) (*sec.Identity, error) {
	record, err := impersonator.impersonations.Find(context, sessionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return impersonator.sessions.Find(context, sessionID)
		}
		return nil, err
	}

	if err := impersonator.sessions.OverwriteRaw(context, sessionID, record.OriginalIdentity); err != nil {
		return nil, fmt.Errorf("impersonation_slot_restore_failed: %w", err)
	}

	if err := impersonator.impersonations.Delete(context, sessionID); err != nil {
		return nil, fmt.Errorf("impersonation_record_cleanup_failed: %w", err)
	}

	restored := &sec.Identity{}
	if err := json.Unmarshal(record.OriginalIdentity, restored); err != nil {
		return nil, fmt.Errorf("impersonation_restored_decode_failed: %w", err)
	}

	impersonator.logger.Info("impersonation_ended",
		slog.String("admin_user_id", restored.ID),
		slog.String("target_user_id", record.UserID),
	)

	return restored, nil
}

/*
Get returns the impersonation record for a session.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *ImpersonationRecord: The record, nil when no impersonation is active
  - error: Connectivity errors
*/
func (impersonator *Impersonator) Get(context context.Context, sessionID string) (*ImpersonationRecord, error) {
	record, err := impersonator.impersonations.Find(context, sessionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}
