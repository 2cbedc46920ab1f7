// Package vaults provides the PostgreSQL-backed repository for vaults.
package vaults

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/dbx"
	"github.com/psemenov/passvault/internal/server/models"
)

// PostgresRepository implements vault storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, vault *models.Vault) (*models.Vault, error) {

	query :=
		`INSERT INTO vaults (id, name, description, owner_id, key_material)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		vault.ID, vault.Name, vault.Description, vault.OwnerID, vault.KeyMaterial).Scan(&vault.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Vault, error) {
	query :=
		`SELECT id, name, description, owner_id, key_material, created_at
		 FROM vaults
		 WHERE id = $1
		 `

	vault := &models.Vault{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&vault.ID, &vault.Name, &vault.Description, &vault.OwnerID, &vault.KeyMaterial, &vault.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}
