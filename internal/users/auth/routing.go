// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import (
	"github.com/terralens/terralens/internal/platform/constants"
	"github.com/terralens/terralens/internal/platform/sec"
)

/*
LandingPath returns the path a freshly authenticated identity should land on.

Description: Administrators land on the admin console, every other
authenticated identity lands on the customer application. An invalid or
roleless identity is routed back to the login page.

Parameters:
  - identity: *sec.Identity

Returns:
  - string: Landing path
*/
func LandingPath(identity *sec.Identity) string {
	if !identity.Valid() {
		return constants.LoginPath
	}

	if identity.IsAdmin() {
		return constants.AdminLandingPath
	}

	return constants.CustomerLandingPath
}
