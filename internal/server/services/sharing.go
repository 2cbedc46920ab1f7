package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/server/access"
	"github.com/psemenov/passvault/internal/server/models"
	"github.com/psemenov/passvault/internal/server/repositories/repomanager"
)

// SharingService manages vault sharing grants.
type SharingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSharingService constructs a SharingService.
func NewSharingService(db *sql.DB, m repomanager.RepositoryManager) *SharingService {
	return &SharingService{db: db, repomanager: m}
}

// ShareVault grants targetUserID access to a vault at the given level.
// The preconditions run in a fixed order so callers always get the same
// error for the same situation: existence checks first, then authority,
// then business-rule conflicts.
//
//  1. vault exists
//  2. target user exists
//  3. acting user exists
//  4. acting user resolves to admin (owner, or holder of an admin grant)
//  5. no self-grants
//  6. the owner is never a grant target; their access is implicit
//  7. no duplicate grant for (vault, target)
func (s *SharingService) ShareVault(ctx context.Context, vaultID, targetUserID, actingUserID string, level models.PermissionLevel) (*models.VaultSharing, error) {
	vaultRepo := s.repomanager.Vaults(s.db)
	userRepo := s.repomanager.Users(s.db)
	sharingRepo := s.repomanager.Sharings(s.db)

	vault, err := vaultRepo.GetByID(ctx, vaultID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorVaultNotFound
		}
		return nil, err
	}

	if _, err := userRepo.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorTargetUserNotFound
		}
		return nil, err
	}

	if _, err := userRepo.GetByID(ctx, actingUserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorActingUserNotFound
		}
		return nil, err
	}

	resolver := access.NewResolver(sharingRepo)
	actingLevel, err := resolver.Resolve(ctx, vault, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actingLevel.AtLeast(models.PermissionAdmin) {
		return nil, common.ErrorInsufficientPermissions
	}

	if targetUserID == actingUserID {
		return nil, common.ErrorCannotShareWithSelf
	}

	if targetUserID == vault.OwnerID {
		return nil, common.ErrorCannotShareWithOwner
	}

	if _, err := sharingRepo.Get(ctx, vaultID, targetUserID); err == nil {
		return nil, common.ErrorAlreadyShared
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	sharing := &models.VaultSharing{
		ID:               uuid.NewString(),
		VaultID:          vaultID,
		SharedWithUserID: targetUserID,
		SharedByUserID:   actingUserID,
		Level:            level,
	}

	created, err := sharingRepo.Create(ctx, sharing)
	if err != nil {
		// a concurrent grant won the race on the unique constraint
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyShared
		}
		return nil, err
	}

	return created, nil
}
