// Package sharings provides the PostgreSQL-backed repository for vault
// sharing grants. The table carries a unique constraint on
// (vault_id, shared_with_user_id): when two grants for the same pair race,
// exactly one insert succeeds and the loser gets ErrorAlreadyExists.
package sharings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/dbx"
	"github.com/psemenov/passvault/internal/server/models"
)

// PostgresRepository implements sharing storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, sharing *models.VaultSharing) (*models.VaultSharing, error) {

	query :=
		`INSERT INTO vault_sharings (id, vault_id, shared_with_user_id, shared_by_user_id, permission_level)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		sharing.ID, sharing.VaultID, sharing.SharedWithUserID, sharing.SharedByUserID,
		string(sharing.Level)).Scan(&sharing.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return sharing, nil
}

func (r *PostgresRepository) Get(ctx context.Context, vaultID, sharedWithUserID string) (*models.VaultSharing, error) {
	query :=
		`SELECT id, vault_id, shared_with_user_id, shared_by_user_id, permission_level, created_at
		 FROM vault_sharings
		 WHERE vault_id = $1 AND shared_with_user_id = $2
		 `

	sharing := &models.VaultSharing{}
	err := r.db.QueryRowContext(ctx, query, vaultID, sharedWithUserID).Scan(
		&sharing.ID, &sharing.VaultID, &sharing.SharedWithUserID, &sharing.SharedByUserID,
		&sharing.Level, &sharing.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return sharing, nil
}

func (r *PostgresRepository) ListByVault(ctx context.Context, vaultID string) ([]*models.VaultSharing, error) {
	query :=
		`SELECT id, vault_id, shared_with_user_id, shared_by_user_id, permission_level, created_at
		 FROM vault_sharings
		 WHERE vault_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, vaultID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.VaultSharing{}
	for rows.Next() {
		sharing := &models.VaultSharing{}
		if err := rows.Scan(&sharing.ID, &sharing.VaultID, &sharing.SharedWithUserID,
			&sharing.SharedByUserID, &sharing.Level, &sharing.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sharing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
