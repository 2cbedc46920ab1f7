// Package common contains shared constants and sentinel errors used across
// PassVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Existence errors for the vault item and sharing flows. Each precondition
	// has its own sentinel so callers get deterministic error identities.
	ErrorVaultNotFound      = errors.New("vault not found")
	ErrorUserNotFound       = errors.New("user not found")
	ErrorOwnerNotFound      = errors.New("owner not found")
	ErrorTargetUserNotFound = errors.New("target user not found")
	ErrorActingUserNotFound = errors.New("acting user not found")
	ErrorCategoryNotFound   = errors.New("category not found")

	// Authorization errors.
	ErrorInsufficientPermissions = errors.New("insufficient permissions")

	// Sharing business-rule errors.
	ErrorAlreadyShared        = errors.New("vault already shared with this user")
	ErrorCannotShareWithSelf  = errors.New("cannot share a vault with yourself")
	ErrorCannotShareWithOwner = errors.New("cannot share a vault with its owner")

	// Validation errors.
	ErrorInvalidPermissionLevel    = errors.New("invalid permission level")
	ErrorNoCharactersSelected      = errors.New("no character types selected")
	ErrorInvalidPasswordLength     = errors.New("invalid password length")
	ErrorInvalidCiphertextEnvelope = errors.New("invalid ciphertext envelope")
)
