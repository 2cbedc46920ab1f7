package services

import (
	"context"
	"database/sql"

	"github.com/psemenov/passvault/internal/server/models"
	"github.com/psemenov/passvault/internal/server/repositories/items"
	"github.com/psemenov/passvault/internal/server/repositories/repomanager"
)

// ItemType restricts which result buckets a search populates.
type ItemType string

const (
	TypeAll           ItemType = ""
	TypePasswordEntry ItemType = "password_entry"
	TypeSecureNote    ItemType = "secure_note"
	TypeCreditCard    ItemType = "credit_card"
)

// SearchInput holds search parameters. Query is matched case-insensitively
// as a substring of the plaintext-searchable fields; empty matches every
// item. VaultID and CategoryID are exact-match filters when non-nil. Type
// restricts the populated buckets; the others come back empty, never nil.
type SearchInput struct {
	Query      string
	VaultID    *string
	CategoryID *string
	Type       ItemType
}

// SearchService queries across the three item kinds by their plaintext
// fields. Cross-vault access checks happen in the caller; this layer only
// applies the supplied filters.
type SearchService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSearchService constructs a SearchService.
func NewSearchService(db *sql.DB, m repomanager.RepositoryManager) *SearchService {
	return &SearchService{db: db, repomanager: m}
}

// Search runs the query against every requested item type.
func (s *SearchService) Search(ctx context.Context, in SearchInput) (*models.ItemCollections, error) {
	filter := items.Filter{Query: in.Query, VaultID: in.VaultID, CategoryID: in.CategoryID}
	repo := s.repomanager.Items(s.db)

	result := models.NewItemCollections()

	if in.Type == TypeAll || in.Type == TypePasswordEntry {
		entries, err := repo.SearchPasswordEntries(ctx, filter)
		if err != nil {
			return nil, err
		}
		result.PasswordEntries = entries
	}

	if in.Type == TypeAll || in.Type == TypeSecureNote {
		notes, err := repo.SearchSecureNotes(ctx, filter)
		if err != nil {
			return nil, err
		}
		result.SecureNotes = notes
	}

	if in.Type == TypeAll || in.Type == TypeCreditCard {
		cards, err := repo.SearchCreditCards(ctx, filter)
		if err != nil {
			return nil, err
		}
		result.CreditCards = cards
	}

	return result, nil
}
