package models

import "github.com/psemenov/passvault/internal/common"

// PermissionLevel is the ordered capability granted on a vault:
// read < write < admin. PermissionNone means no access at all and is never
// persisted; it only appears as a resolver result.
type PermissionLevel string

const (
	PermissionNone  PermissionLevel = ""
	PermissionRead  PermissionLevel = "read"
	PermissionWrite PermissionLevel = "write"
	PermissionAdmin PermissionLevel = "admin"
)

var permissionRank = map[PermissionLevel]int{
	PermissionNone:  0,
	PermissionRead:  1,
	PermissionWrite: 2,
	PermissionAdmin: 3,
}

// AtLeast reports whether l grants the capabilities of min. Higher levels
// imply lower ones: admin covers write, write covers read.
func (l PermissionLevel) AtLeast(min PermissionLevel) bool {
	return permissionRank[l] >= permissionRank[min]
}

// ParsePermissionLevel validates a grant level supplied by a caller. Only
// read, write, and admin are grantable; anything else (including the empty
// "none") is rejected.
func ParsePermissionLevel(s string) (PermissionLevel, error) {
	switch l := PermissionLevel(s); l {
	case PermissionRead, PermissionWrite, PermissionAdmin:
		return l, nil
	default:
		return PermissionNone, common.ErrorInvalidPermissionLevel
	}
}
