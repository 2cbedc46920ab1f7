package models

import "time"

// Vault is an encryption and access boundary. KeyMaterial is generated once
// at creation and never regenerated; every secret inside the vault is sealed
// with a key derived from it. It must never be serialized to API consumers.
type Vault struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	KeyMaterial []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is a named grouping scoped to exactly one vault. Items referencing
// a category must live in the same vault, which services validate explicitly.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	VaultID   string    `json:"vault_id"`
	CreatedAt time.Time `json:"created_at"`
}
