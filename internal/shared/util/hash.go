package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives a stable, filesystem-safe directory name from a user
// ID so storage keys never embed raw identifiers.
func HashUserKey(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
