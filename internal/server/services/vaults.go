// Package services contains server-side business logic: vault, item,
// sharing, search, and user operations. Services receive their dependencies
// (connection pool and repository manager) explicitly and translate
// repository-level sentinels into the domain error taxonomy.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/dbx"
	"github.com/psemenov/passvault/internal/server/access"
	"github.com/psemenov/passvault/internal/server/models"
	"github.com/psemenov/passvault/internal/server/repositories/items"
	"github.com/psemenov/passvault/internal/server/repositories/repomanager"
)

// vaultKeyMaterialSize is the length of the random key material generated
// for every new vault. Generated once, never regenerated.
const vaultKeyMaterialSize = 32

// VaultService handles vault and category creation plus item listing.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewVaultService constructs a VaultService.
func NewVaultService(db *sql.DB, m repomanager.RepositoryManager) *VaultService {
	return &VaultService{db: db, repomanager: m}
}

// CreateVault creates a vault owned by ownerID with fresh key material.
// The owner must exist; nobody else can be set as owner at creation.
func (s *VaultService) CreateVault(ctx context.Context, name string, description *string, ownerID string) (*models.Vault, error) {
	userRepo := s.repomanager.Users(s.db)
	if _, err := userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorOwnerNotFound
		}
		return nil, err
	}

	vault := &models.Vault{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		KeyMaterial: common.GenerateRandByteArray(vaultKeyMaterialSize),
	}

	return s.repomanager.Vaults(s.db).Create(ctx, vault)
}

// CreateCategory creates a category inside a vault. The acting user needs
// write or admin on the vault, like any other write-class operation.
func (s *VaultService) CreateCategory(ctx context.Context, name, vaultID, actingUserID string) (*models.Category, error) {
	vault, err := s.authorizeWrite(ctx, vaultID, actingUserID)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:      uuid.NewString(),
		Name:    name,
		VaultID: vault.ID,
	}

	return s.repomanager.Categories(s.db).Create(ctx, category)
}

// GetVaultItems returns all items of a vault, optionally narrowed to one
// category. All three collections come back non-nil; no match means empty.
func (s *VaultService) GetVaultItems(ctx context.Context, vaultID string, categoryID *string) (*models.ItemCollections, error) {
	filter := items.Filter{VaultID: &vaultID, CategoryID: categoryID}
	repo := s.repomanager.Items(s.db)

	result := models.NewItemCollections()

	entries, err := repo.SearchPasswordEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	result.PasswordEntries = entries

	notes, err := repo.SearchSecureNotes(ctx, filter)
	if err != nil {
		return nil, err
	}
	result.SecureNotes = notes

	cards, err := repo.SearchCreditCards(ctx, filter)
	if err != nil {
		return nil, err
	}
	result.CreditCards = cards

	return result, nil
}

// authorizeWrite runs the shared precondition ladder for write-class vault
// operations: vault exists, acting user exists, resolved level is at least
// write. Each step fails with its own error so callers can tell them apart.
func (s *VaultService) authorizeWrite(ctx context.Context, vaultID, actingUserID string) (*models.Vault, error) {
	return authorize(ctx, s.db, s.repomanager, vaultID, actingUserID, models.PermissionWrite)
}

// authorize is the precondition ladder shared by the vault and item
// services. The check order is part of the contract: existence before
// authority.
func authorize(ctx context.Context, db dbx.DBTX, m repomanager.RepositoryManager,
	vaultID, actingUserID string, min models.PermissionLevel) (*models.Vault, error) {

	vault, err := m.Vaults(db).GetByID(ctx, vaultID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorVaultNotFound
		}
		return nil, err
	}

	// a nonexistent actor cannot hold any grant, so existence is checked first
	if _, err := m.Users(db).GetByID(ctx, actingUserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, err
	}

	resolver := access.NewResolver(m.Sharings(db))
	level, err := resolver.Resolve(ctx, vault, actingUserID)
	if err != nil {
		return nil, err
	}
	if !level.AtLeast(min) {
		return nil, common.ErrorInsufficientPermissions
	}

	return vault, nil
}
