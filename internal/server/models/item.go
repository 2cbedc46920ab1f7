package models

import "time"

// PasswordEntry stores a credential. The password exists only as an
// encryption envelope; title, username, URL, and notes stay plaintext and
// searchable.
type PasswordEntry struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Username          *string   `json:"username"`
	URL               *string   `json:"url"`
	Notes             *string   `json:"notes"`
	EncryptedPassword []byte    `json:"encrypted_password"`
	VaultID           string    `json:"vault_id"`
	CategoryID        *string   `json:"category_id"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SecureNote stores free-form text. Only the title is plaintext; the body is
// an encryption envelope and deliberately unsearchable.
type SecureNote struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	EncryptedContent []byte    `json:"encrypted_content"`
	VaultID          string    `json:"vault_id"`
	CategoryID       *string   `json:"category_id"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreditCard stores payment card data. Number and CVV are encryption
// envelopes; title and cardholder name stay plaintext and searchable.
type CreditCard struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	CardholderName  string    `json:"cardholder_name"`
	EncryptedNumber []byte    `json:"encrypted_number"`
	EncryptedCVV    []byte    `json:"encrypted_cvv"`
	ExpiryMonth     int       `json:"expiry_month"`
	ExpiryYear      int       `json:"expiry_year"`
	VaultID         string    `json:"vault_id"`
	CategoryID      *string   `json:"category_id"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ItemCollections groups the three vault item kinds as returned by listing
// and search operations. All slices are non-nil, empty when nothing matches.
type ItemCollections struct {
	PasswordEntries []*PasswordEntry `json:"password_entries"`
	SecureNotes     []*SecureNote    `json:"secure_notes"`
	CreditCards     []*CreditCard    `json:"credit_cards"`
}

// NewItemCollections returns collections with all three buckets allocated.
func NewItemCollections() *ItemCollections {
	return &ItemCollections{
		PasswordEntries: []*PasswordEntry{},
		SecureNotes:     []*SecureNote{},
		CreditCards:     []*CreditCard{},
	}
}
