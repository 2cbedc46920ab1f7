// Package cryptox implements the encryption envelope used for vault item
// secrets, plus password hashing and the placeholder two-factor scheme.
//
// Secrets are sealed with AES-256-GCM. The cipher key is derived from the
// vault's stored key material with SHA-256; the raw material is never used
// as a key directly. Every call generates a fresh random nonce, so sealing
// the same plaintext twice yields two different envelopes.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"

	"github.com/psemenov/passvault/internal/common"
)

const nonceSize = 12

// DeriveVaultKey turns a vault's stored key material into an AES-256 key.
func DeriveVaultKey(keyMaterial []byte) []byte {
	hash := sha256.Sum256(keyMaterial)
	return hash[:]
}

// EncryptSecret seals plaintext with a key derived from the vault's key
// material and returns a self-describing envelope: a random 12-byte nonce
// followed by the GCM ciphertext. Empty plaintext still produces a valid,
// non-empty envelope (the nonce plus the authentication tag).
func EncryptSecret(plaintext, keyMaterial []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	aesgcm, err := newGCM(keyMaterial)
	if err != nil {
		return nil, err
	}

	// Sealing in place after the nonce keeps the envelope a single blob.
	envelope := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return envelope, nil
}

// DecryptSecret opens an envelope produced by EncryptSecret. It fails with
// common.ErrorInvalidCiphertextEnvelope if the envelope is too short to
// contain a nonce, and with the cipher's error if authentication fails.
func DecryptSecret(envelope, keyMaterial []byte) ([]byte, error) {
	if len(envelope) < nonceSize {
		return nil, common.ErrorInvalidCiphertextEnvelope
	}

	aesgcm, err := newGCM(keyMaterial)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := envelope[:nonceSize], envelope[nonceSize:]
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(keyMaterial []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(DeriveVaultKey(keyMaterial))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
