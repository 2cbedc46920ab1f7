package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/cryptox"
	"github.com/psemenov/passvault/internal/server/models"
	"github.com/psemenov/passvault/internal/server/repositories/repomanager"
)

// ItemService orchestrates creation of the three vault item kinds. Every
// create runs the same precondition ladder (vault exists, acting user exists,
// write permission, category valid), then seals the secret fields with the
// vault's key material and persists a single row.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewItemService constructs an ItemService.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// CreatePasswordEntryInput carries the plaintext fields for a new password
// entry. Password is the only secret; the rest stays searchable metadata.
type CreatePasswordEntryInput struct {
	VaultID      string
	CategoryID   *string
	ActingUserID string
	Title        string
	Username     *string
	URL          *string
	Notes        *string
	Password     string
}

// CreateSecureNoteInput carries the plaintext fields for a new secure note.
// Content is the secret; only the title stays searchable.
type CreateSecureNoteInput struct {
	VaultID      string
	CategoryID   *string
	ActingUserID string
	Title        string
	Content      string
}

// CreateCreditCardInput carries the plaintext fields for a new credit card.
// Number and CVV are secrets; title and cardholder name stay searchable.
type CreateCreditCardInput struct {
	VaultID        string
	CategoryID     *string
	ActingUserID   string
	Title          string
	CardholderName string
	Number         string
	CVV            string
	ExpiryMonth    int
	ExpiryYear     int
}

// CreatePasswordEntry validates the preconditions, encrypts the password
// with the target vault's key material, and persists the entry. The returned
// entry carries ciphertext only; the plaintext password is never echoed back.
func (s *ItemService) CreatePasswordEntry(ctx context.Context, in CreatePasswordEntryInput) (*models.PasswordEntry, error) {
	vault, err := s.prepare(ctx, in.VaultID, in.ActingUserID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	encrypted, err := cryptox.EncryptSecret([]byte(in.Password), vault.KeyMaterial)
	if err != nil {
		return nil, err
	}

	entry := &models.PasswordEntry{
		ID:                uuid.NewString(),
		Title:             in.Title,
		Username:          in.Username,
		URL:               in.URL,
		Notes:             in.Notes,
		EncryptedPassword: encrypted,
		VaultID:           vault.ID,
		CategoryID:        in.CategoryID,
		CreatedBy:         in.ActingUserID,
	}

	return s.repomanager.Items(s.db).CreatePasswordEntry(ctx, entry)
}

// CreateSecureNote validates the preconditions, encrypts the note body with
// the target vault's key material, and persists the note.
func (s *ItemService) CreateSecureNote(ctx context.Context, in CreateSecureNoteInput) (*models.SecureNote, error) {
	vault, err := s.prepare(ctx, in.VaultID, in.ActingUserID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	encrypted, err := cryptox.EncryptSecret([]byte(in.Content), vault.KeyMaterial)
	if err != nil {
		return nil, err
	}

	note := &models.SecureNote{
		ID:               uuid.NewString(),
		Title:            in.Title,
		EncryptedContent: encrypted,
		VaultID:          vault.ID,
		CategoryID:       in.CategoryID,
		CreatedBy:        in.ActingUserID,
	}

	return s.repomanager.Items(s.db).CreateSecureNote(ctx, note)
}

// CreateCreditCard validates the preconditions, encrypts the card number and
// CVV with the target vault's key material (each in its own envelope), and
// persists the card.
func (s *ItemService) CreateCreditCard(ctx context.Context, in CreateCreditCardInput) (*models.CreditCard, error) {
	vault, err := s.prepare(ctx, in.VaultID, in.ActingUserID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	encryptedNumber, err := cryptox.EncryptSecret([]byte(in.Number), vault.KeyMaterial)
	if err != nil {
		return nil, err
	}
	encryptedCVV, err := cryptox.EncryptSecret([]byte(in.CVV), vault.KeyMaterial)
	if err != nil {
		return nil, err
	}

	card := &models.CreditCard{
		ID:              uuid.NewString(),
		Title:           in.Title,
		CardholderName:  in.CardholderName,
		EncryptedNumber: encryptedNumber,
		EncryptedCVV:    encryptedCVV,
		ExpiryMonth:     in.ExpiryMonth,
		ExpiryYear:      in.ExpiryYear,
		VaultID:         vault.ID,
		CategoryID:      in.CategoryID,
		CreatedBy:       in.ActingUserID,
	}

	return s.repomanager.Items(s.db).CreateCreditCard(ctx, card)
}

// prepare runs the item-creation precondition ladder in contract order:
//  1. vault exists
//  2. acting user exists
//  3. acting user holds write or admin
//  4. the category, if given, exists and belongs to the target vault
func (s *ItemService) prepare(ctx context.Context, vaultID, actingUserID string, categoryID *string) (*models.Vault, error) {
	vault, err := authorize(ctx, s.db, s.repomanager, vaultID, actingUserID, models.PermissionWrite)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		category, err := s.repomanager.Categories(s.db).GetByID(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorCategoryNotFound
			}
			return nil, err
		}
		// a category from another vault is reported exactly like a missing one
		if category.VaultID != vault.ID {
			return nil, common.ErrorCategoryNotFound
		}
	}

	return vault, nil
}
