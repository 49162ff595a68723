package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLength is how many hex characters of the hash Fingerprint keeps.
const fingerprintLength = 12

// HashToken creates a SHA-256 hash of a token.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Fingerprint returns a short, non-reversible identifier for a token that is
// safe to write to logs. The empty token fingerprints as "none".
func Fingerprint(token string) string {
	if token == "" {
		return "none"
	}
	return "sha256:" + HashToken(token)[:fingerprintLength]
}
