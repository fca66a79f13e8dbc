// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level carried in the provider's "rol" claim.
type UserRole string

const (
	// RoleAdmin manages the catalogue (contents, genres).
	RoleAdmin UserRole = "admin"

	// RoleModerator moderates comments.
	RoleModerator UserRole = "moderator"

	// RoleMember is a signed-in reader.
	RoleMember UserRole = "member"
)

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
