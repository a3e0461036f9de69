// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside the session cookie token.
//
// # Why a signed token instead of a bare session ID?
//
// The cookie carries an HS256-signed JWT whose `sid` claim points at the
// server-side session slot in Redis. Signing lets the middleware reject
// forged or garbage cookies without a Redis round trip, while the slot
// itself stays authoritative for the identity payload.
type SessionClaims struct {
	jwt.RegisteredClaims

	// SessionID is the Redis session slot identifier.
	SessionID string `json:"sid"`

	// UserID is the account the session was created for. Informational
	// only — the effective identity is always read from the slot.
	UserID string `json:"uid"`
}

// minSecretLength guards against operators deploying with trivially
// brute-forceable HMAC secrets.
const minSecretLength = 32

// TokenService mints and verifies session cookie tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService from the shared session secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("sec: session secret must be at least %d bytes", minSecretLength)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// MintSessionToken creates a signed cookie token for a session slot.
func (service *TokenService) MintSessionToken(sessionID, userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		SessionID: sessionID,
		UserID:    userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// VerifySessionToken checks the signature and validity of a cookie token.
func (service *TokenService) VerifySessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid session token claims")
	}

	if claims.SessionID == "" {
		return nil, fmt.Errorf("sec: session token missing sid claim")
	}

	return claims, nil
}
