package sharings

import (
	"context"

	"github.com/psemenov/passvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, sharing *models.VaultSharing) (*models.VaultSharing, error)
	Get(ctx context.Context, vaultID, sharedWithUserID string) (*models.VaultSharing, error)
	ListByVault(ctx context.Context, vaultID string) ([]*models.VaultSharing, error)
}
