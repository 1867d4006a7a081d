package model

import "strings"

// Role is a usage tier derived from a season's rate stats. Roles are never
// stored as identity; they are recomputed per evaluation.
type Role string

// Forward, defense and goaltending roles, highest tier first within each group.
const (
	Role1C Role = "1C"
	Role2C Role = "2C"
	Role3C Role = "3C"
	Role4C Role = "4C"

	RoleTop6Wing    Role = "TOP6_W"
	RoleMiddle6Wing Role = "MID6_W"
	RoleBottom6Wing Role = "BOT6_W"

	Role1D Role = "1D"
	Role2D Role = "2D"
	Role3D Role = "3D"
	Role4D Role = "4D"
	Role5D Role = "5D"
	Role6D Role = "6D"

	RoleStartingGoalie Role = "STARTING_G"
	RoleBackupGoalie   Role = "BACKUP_G"

	RoleUnknown Role = "UNKNOWN"
)

var allRoles = []Role{ //nolint:gochecknoglobals // closed enumeration
	Role1C, Role2C, Role3C, Role4C,
	RoleTop6Wing, RoleMiddle6Wing, RoleBottom6Wing,
	Role1D, Role2D, Role3D, Role4D, Role5D, Role6D,
	RoleStartingGoalie, RoleBackupGoalie,
}

// Roles returns every known role in canonical order. RoleUnknown is not included.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole resolves a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, r := range allRoles {
		if string(r) == s {
			return r, true
		}
	}
	return RoleUnknown, false
}

// Known reports whether r is part of the closed enumeration.
func (r Role) Known() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Position returns the position group the role belongs to.
func (r Role) Position() Position {
	switch r {
	case Role1C, Role2C, Role3C, Role4C:
		return Center
	case RoleTop6Wing, RoleMiddle6Wing, RoleBottom6Wing:
		return Wing
	case Role1D, Role2D, Role3D, Role4D, Role5D, Role6D:
		return Defenseman
	case RoleStartingGoalie, RoleBackupGoalie:
		return Goalie
	default:
		return PositionUnknown
	}
}

// Index returns the role's position in canonical order, or -1 for unknown roles.
func (r Role) Index() int {
	for i, known := range allRoles {
		if known == r {
			return i
		}
	}
	return -1
}
