package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"time"
)

// twoFactorBucket is the width of the time bucket for code derivation.
const twoFactorBucket = 30 * time.Second

// TwoFactorCode derives a 6-digit code from the shared secret and the
// current time bucket. This is a placeholder scheme, not RFC 6238 TOTP:
// there is no HMAC and no tolerance window.
func TwoFactorCode(secret string, now time.Time) string {
	bucket := now.Unix() / int64(twoFactorBucket.Seconds())
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(bucket))
	sum := sha256.Sum256(append([]byte(secret), buf[:]...))
	code := binary.BigEndian.Uint32(sum[:4]) % 1_000_000
	return fmt.Sprintf("%06d", code)
}

// VerifyTwoFactorCode checks a candidate code in constant time.
func VerifyTwoFactorCode(secret, candidate string, now time.Time) bool {
	expected := TwoFactorCode(secret, now)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1
}
