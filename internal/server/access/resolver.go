// Package access implements the single permission-resolution point for
// vaults. Every write path resolves the acting user's effective level here
// instead of re-implementing the owner-vs-grant special case.
package access

import (
	"context"
	"errors"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/server/models"
)

// SharingLookup is the slice of the sharings repository the resolver needs.
type SharingLookup interface {
	Get(ctx context.Context, vaultID, sharedWithUserID string) (*models.VaultSharing, error)
}

// Resolver computes effective permission levels on vaults.
type Resolver struct {
	sharings SharingLookup
}

func NewResolver(sharings SharingLookup) *Resolver {
	return &Resolver{sharings: sharings}
}

// Resolve returns the effective permission of userID on vault:
// the owner is always admin (never represented as a sharing row), a granted
// user gets their grant's level, everyone else gets PermissionNone.
// The caller is responsible for having checked that the vault exists.
func (r *Resolver) Resolve(ctx context.Context, vault *models.Vault, userID string) (models.PermissionLevel, error) {
	if vault.OwnerID == userID {
		return models.PermissionAdmin, nil
	}

	sharing, err := r.sharings.Get(ctx, vault.ID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.PermissionNone, nil
		}
		return models.PermissionNone, err
	}

	return sharing.Level, nil
}
