package categories

import (
	"context"

	"github.com/psemenov/passvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	ListByVault(ctx context.Context, vaultID string) ([]*models.Category, error)
}
