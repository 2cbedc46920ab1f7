// Package items provides PostgreSQL-backed storage for the three vault item
// kinds: password entries, secure notes, and credit cards. Secret columns
// hold opaque ciphertext envelopes; text search only ever touches the
// plaintext metadata columns.
package items

import (
	"context"
	"fmt"
	"strings"

	"github.com/psemenov/passvault/internal/dbx"
	"github.com/psemenov/passvault/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreatePasswordEntry(ctx context.Context, entry *models.PasswordEntry) (*models.PasswordEntry, error) {

	query :=
		`INSERT INTO password_entries (id, title, username, url, notes, encrypted_password, vault_id, category_id, created_by)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.Title, entry.Username, entry.URL, entry.Notes, entry.EncryptedPassword,
		entry.VaultID, entry.CategoryID, entry.CreatedBy).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) CreateSecureNote(ctx context.Context, note *models.SecureNote) (*models.SecureNote, error) {

	query :=
		`INSERT INTO secure_notes (id, title, encrypted_content, vault_id, category_id, created_by)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.Title, note.EncryptedContent,
		note.VaultID, note.CategoryID, note.CreatedBy).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) CreateCreditCard(ctx context.Context, card *models.CreditCard) (*models.CreditCard, error) {

	query :=
		`INSERT INTO credit_cards (id, title, cardholder_name, encrypted_number, encrypted_cvv, expiry_month, expiry_year, vault_id, category_id, created_by)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		card.ID, card.Title, card.CardholderName, card.EncryptedNumber, card.EncryptedCVV,
		card.ExpiryMonth, card.ExpiryYear, card.VaultID, card.CategoryID, card.CreatedBy).Scan(&card.CreatedAt, &card.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *PostgresRepository) SearchPasswordEntries(ctx context.Context, filter Filter) ([]*models.PasswordEntry, error) {
	query :=
		`SELECT id, title, username, url, notes, encrypted_password, vault_id, category_id, created_by, created_at, updated_at
		 FROM password_entries
		 `
	query, args := appendFilter(query, filter, []string{"title", "username", "url", "notes"})

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.PasswordEntry{}
	for rows.Next() {
		entry := &models.PasswordEntry{}
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Username, &entry.URL, &entry.Notes,
			&entry.EncryptedPassword, &entry.VaultID, &entry.CategoryID, &entry.CreatedBy,
			&entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SearchSecureNotes(ctx context.Context, filter Filter) ([]*models.SecureNote, error) {
	query :=
		`SELECT id, title, encrypted_content, vault_id, category_id, created_by, created_at, updated_at
		 FROM secure_notes
		 `
	// note bodies are ciphertext, only the title is searchable
	query, args := appendFilter(query, filter, []string{"title"})

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.SecureNote{}
	for rows.Next() {
		note := &models.SecureNote{}
		if err := rows.Scan(&note.ID, &note.Title, &note.EncryptedContent, &note.VaultID,
			&note.CategoryID, &note.CreatedBy, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SearchCreditCards(ctx context.Context, filter Filter) ([]*models.CreditCard, error) {
	query :=
		`SELECT id, title, cardholder_name, encrypted_number, encrypted_cvv, expiry_month, expiry_year, vault_id, category_id, created_by, created_at, updated_at
		 FROM credit_cards
		 `
	query, args := appendFilter(query, filter, []string{"title", "cardholder_name"})

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.CreditCard{}
	for rows.Next() {
		card := &models.CreditCard{}
		if err := rows.Scan(&card.ID, &card.Title, &card.CardholderName, &card.EncryptedNumber,
			&card.EncryptedCVV, &card.ExpiryMonth, &card.ExpiryYear, &card.VaultID,
			&card.CategoryID, &card.CreatedBy, &card.CreatedAt, &card.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// appendFilter builds the WHERE clause for a filtered item query. An empty
// Query adds no text predicate at all, so it matches every row that passes
// the vault/category constraints.
func appendFilter(query string, filter Filter, textColumns []string) (string, []any) {
	var predicates []string
	var args []any

	if filter.Query != "" {
		pattern := "%" + escapeLike(filter.Query) + "%"
		args = append(args, pattern)
		n := len(args)
		matches := make([]string, len(textColumns))
		for i, col := range textColumns {
			matches[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
		}
		predicates = append(predicates, "("+strings.Join(matches, " OR ")+")")
	}

	if filter.VaultID != nil {
		args = append(args, *filter.VaultID)
		predicates = append(predicates, fmt.Sprintf("vault_id = $%d", len(args)))
	}

	if filter.CategoryID != nil {
		// NULL category never matches a concrete category filter
		args = append(args, *filter.CategoryID)
		predicates = append(predicates, fmt.Sprintf("category_id = $%d", len(args)))
	}

	if len(predicates) > 0 {
		query += "WHERE " + strings.Join(predicates, " AND ") + "\n"
	}
	query += "ORDER BY created_at"

	return query, args
}

// escapeLike neutralizes LIKE metacharacters so the query text is matched
// literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
