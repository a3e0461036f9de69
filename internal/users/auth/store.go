// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import (
	"context"
	"time"

	"github.com/terralens/terralens/internal/platform/sec"
)

// # Account Data Access

// AccountRepository defines the read-side data access contract the auth
// service needs for credential verification.
type AccountRepository interface {

	/*
		FindByID returns the active account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		FindByEmail returns the active account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)
}

// # Session Slot Access

// SessionRepository defines the contract for the server-side session slot.
//
// The slot holds the EFFECTIVE identity — whatever login or the impersonation
// overlay last wrote. The raw-byte variants exist so the overlay can snapshot
// and restore the slot byte-for-byte, without a decode/re-encode cycle that
// could silently normalize fields.
type SessionRepository interface {

	/*
		Create initializes a fresh session slot with the given TTL.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - identity: *sec.Identity
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, sessionID string, identity *sec.Identity, ttl time.Duration) error

	/*
		Find returns the identity currently occupying the slot.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *sec.Identity: Effective identity
		  - error: apperr.NotFound if the slot is absent or expired
	*/
	Find(context context.Context, sessionID string) (*sec.Identity, error)

	/*
		FindRaw returns the exact stored bytes of the slot.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - []byte: Raw slot payload
		  - error: apperr.NotFound if the slot is absent or expired
	*/
	FindRaw(context context.Context, sessionID string) ([]byte, error)

	/*
		Overwrite replaces the slot's identity, preserving the remaining TTL.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - identity: *sec.Identity

		Returns:
		  - error: Persistence failures
	*/
	Overwrite(context context.Context, sessionID string, identity *sec.Identity) error

	/*
		OverwriteRaw replaces the slot with exact bytes, preserving the remaining TTL.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - raw: []byte

		Returns:
		  - error: Persistence failures
	*/
	OverwriteRaw(context context.Context, sessionID string, raw []byte) error

	/*
		Delete removes the session slot.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, sessionID string) error
}

// # Impersonation Record Access

// ImpersonationRepository defines the contract for the impersonation record
// shadowing a session slot.
type ImpersonationRepository interface {

	/*
		Set stores the impersonation record for a session, with a TTL matched
		to the remaining lifetime of the session slot itself.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - record: *ImpersonationRecord

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, sessionID string, record *ImpersonationRecord) error

	/*
		Find returns the active impersonation record for a session.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *ImpersonationRecord: Hydrated record
		  - error: apperr.NotFound if no impersonation is active
	*/
	Find(context context.Context, sessionID string) (*ImpersonationRecord, error)

	/*
		Delete removes the impersonation record.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, sessionID string) error
}
