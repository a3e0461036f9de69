// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/constants"
	"github.com/terralens/terralens/internal/platform/sec"
)

// # Session Slot Repository

// RedisSessionRepository implements [SessionRepository] using Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionKey builds the Redis key for a session slot.
func sessionKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

/*
Create initializes a fresh session slot with the given TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - identity: *sec.Identity
  - ttl: time.Duration

Returns:
  - error: Serialization or persistence failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, sessionID string, identity *sec.Identity, ttl time.Duration) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	if err := repository.client.Set(context, sessionKey(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
Find returns the identity currently occupying the slot.

Description: Returns apperr.Unauthorized-compatible NotFound when the slot is
absent or has expired.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *sec.Identity: Effective identity
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Find(context context.Context, sessionID string) (*sec.Identity, error) {
	raw, err := repository.FindRaw(context, sessionID)
	if err != nil {
		return nil, err
	}

	identity := &sec.Identity{}
	if err := json.Unmarshal(raw, identity); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	return identity, nil
}

/*
FindRaw returns the exact stored bytes of the slot.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - []byte: Raw slot payload
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindRaw(context context.Context, sessionID string) ([]byte, error) {
	raw, err := repository.client.Get(context, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	return raw, nil
}

/*
Overwrite replaces the slot's identity while preserving the remaining TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - identity: *sec.Identity

Returns:
  - error: Serialization or persistence failures
*/
func (repository *RedisSessionRepository) Overwrite(context context.Context, sessionID string, identity *sec.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	return repository.OverwriteRaw(context, sessionID, payload)
}

/*
OverwriteRaw replaces the slot with exact bytes while preserving the remaining TTL.

Description: Uses redis.KeepTTL so an impersonation restore never extends or
shortens the admin's original session lifetime.

Parameters:
  - context: context.Context
  - sessionID: string
  - raw: []byte

Returns:
  - error: Persistence failures
*/
func (repository *RedisSessionRepository) OverwriteRaw(context context.Context, sessionID string, raw []byte) error {
	if err := repository.client.Set(context, sessionKey(sessionID), raw, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_overwrite_failed: %w", err)
	}

	return nil
}

/*
Delete removes the session slot.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, sessionID string) error {
	if err := repository.client.Del(context, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}

// # Impersonation Record Repository

// RedisImpersonationRepository implements [ImpersonationRepository] using Redis.
type RedisImpersonationRepository struct {
	client *redis.Client
}

// NewImpersonationRepository creates a new Redis-backed ImpersonationRepository.
func NewImpersonationRepository(client *redis.Client) *RedisImpersonationRepository {
	return &RedisImpersonationRepository{client: client}
}

// impersonationKey builds the Redis key for an impersonation record.
func impersonationKey(sessionID string) string {
	return constants.RedisPrefixImpersonation + sessionID
}

/*
Set stores the impersonation record for a session.

Description: The record's TTL is matched to the remaining lifetime of the
session slot, so an expiring session takes its impersonation shadow with it —
a record can never outlive the session it snapshots.

Parameters:
  - context: context.Context
  - sessionID: string
  - record: *ImpersonationRecord

Returns:
  - error: Serialization or persistence failures
*/
func (repository *RedisImpersonationRepository) Set(context context.Context, sessionID string, record *ImpersonationRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_impersonation_marshal_failed: %w", err)
	}

	// Match the session slot's remaining TTL.
	ttl, err := repository.client.TTL(context, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("redis_impersonation_ttl_lookup_failed: %w", err)
	}
	if ttl <= 0 {
		ttl = SessionTTL
	}

	if err := repository.client.Set(context, impersonationKey(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_impersonation_set_failed: %w", err)
	}

	return nil
}

/*
Find returns the active impersonation record for a session.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *ImpersonationRecord: Hydrated record
  - error: apperr.NotFound if no impersonation is active
*/
func (repository *RedisImpersonationRepository) Find(context context.Context, sessionID string) (*ImpersonationRecord, error) {
	raw, err := repository.client.Get(context, impersonationKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Impersonation record")
		}
		return nil, fmt.Errorf("redis_impersonation_get_failed: %w", err)
	}

	record := &ImpersonationRecord{}
	if err := json.Unmarshal(raw, record); err != nil {
		return nil, fmt.Errorf("redis_impersonation_unmarshal_failed: %w", err)
	}

	return record, nil
}

/*
Delete removes the impersonation record.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisImpersonationRepository) Delete(context context.Context, sessionID string) error {
	if err := repository.client.Del(context, impersonationKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_impersonation_delete_failed: %w", err)
	}

	return nil
}
