package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives a stable filesystem-safe key for a user ID. Stored
// resumes are grouped under this key instead of the raw ID.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
