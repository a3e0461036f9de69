// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terralens/terralens/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestTokenService_RoundTrip tests minting and verifying a session cookie token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "terralens")
	require.NoError(t, err)

	token, err := service.MintSessionToken("session-abc", "user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifySessionToken(token)
	require.NoError(t, err)

	assert.Equal(t, "session-abc", claims.SessionID)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "terralens", claims.Issuer)
}

/*
TestTokenService_WrongSecret verifies that a token signed with a different
secret is rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	minter, err := sec.NewTokenService(testSecret, "terralens")
	require.NoError(t, err)

	verifier, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff", "terralens")
	require.NoError(t, err)

	token, err := minter.MintSessionToken("session-abc", "user-123", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifySessionToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Expired verifies that an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "terralens")
	require.NoError(t, err)

	token, err := service.MintSessionToken("session-abc", "user-123", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifySessionToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Garbage verifies that non-token input is rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "terralens")
	require.NoError(t, err)

	_, err = service.VerifySessionToken("not-a-token")
	assert.Error(t, err)
}

/*
TestNewTokenService_ShortSecret verifies the minimum secret length guard.
*/
func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("too-short", "terralens")
	assert.Error(t, err)
}
