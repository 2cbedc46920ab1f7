package items

import (
	"context"

	"github.com/psemenov/passvault/internal/server/models"
)

// Filter narrows item queries. Query is a case-insensitive substring matched
// against each type's plaintext columns; empty means "match everything".
// VaultID and CategoryID are exact-match constraints when non-nil. A nil
// CategoryID places no constraint; items without a category never match a
// concrete CategoryID filter.
type Filter struct {
	Query      string
	VaultID    *string
	CategoryID *string
}

type Repository interface {
	CreatePasswordEntry(ctx context.Context, entry *models.PasswordEntry) (*models.PasswordEntry, error)
	CreateSecureNote(ctx context.Context, note *models.SecureNote) (*models.SecureNote, error)
	CreateCreditCard(ctx context.Context, card *models.CreditCard) (*models.CreditCard, error)

	SearchPasswordEntries(ctx context.Context, filter Filter) ([]*models.PasswordEntry, error)
	SearchSecureNotes(ctx context.Context, filter Filter) ([]*models.SecureNote, error)
	SearchCreditCards(ctx context.Context, filter Filter) ([]*models.CreditCard, error)
}
