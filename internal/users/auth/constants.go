// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import "time"

// # Session Constraints

const (
	// SessionTTL is the duration a server-side session slot remains valid.
	// One week balances dashboard convenience against stale-session risk.
	SessionTTL = 7 * 24 * time.Hour

	// SessionIDLength is the byte length of the random session identifier.
	SessionIDLength = 32
)
