package models

import "time"

// VaultSharing is a directed grant: SharedBy granted SharedWith access to the
// vault at Level. At most one record exists per (vault, shared-with) pair,
// enforced both in the sharing service and by a unique constraint. The
// vault owner never appears as SharedWith; owner access is implicit.
type VaultSharing struct {
	ID               string          `json:"id"`
	VaultID          string          `json:"vault_id"`
	SharedWithUserID string          `json:"shared_with_user_id"`
	SharedByUserID   string          `json:"shared_by_user_id"`
	Level            PermissionLevel `json:"level"`
	CreatedAt        time.Time       `json:"created_at"`
}
