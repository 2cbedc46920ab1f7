// Package passgen builds random passwords from selectable character classes
// using the system CSPRNG.
package passgen

import (
	"crypto/rand"
	"math/big"

	"github.com/psemenov/passvault/internal/common"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// Options selects the password length and which character classes may
// appear. At least one class must be enabled.
type Options struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool
}

// Generate returns a random password drawn uniformly from the enabled
// character classes. Zero enabled classes or a non-positive length are
// invalid requests.
func Generate(opts Options) (string, error) {
	if opts.Length <= 0 {
		return "", common.ErrorInvalidPasswordLength
	}

	var charset string
	if opts.Lowercase {
		charset += lowercaseChars
	}
	if opts.Uppercase {
		charset += uppercaseChars
	}
	if opts.Digits {
		charset += digitChars
	}
	if opts.Symbols {
		charset += symbolChars
	}
	if charset == "" {
		return "", common.ErrorNoCharactersSelected
	}

	max := big.NewInt(int64(len(charset)))
	password := make([]byte, opts.Length)
	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		password[i] = charset[n.Int64()]
	}

	return string(password), nil
}
