package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyFingerprint returns the hex sha256 of an API key, for use as a cache key
// without holding the raw secret.
func KeyFingerprint(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}
