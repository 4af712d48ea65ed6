package auth

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// HashPassword returns the hex form of a fixed 256-bit digest of the raw
// password bytes. The digest is deterministic so login can match the stored
// column exactly; the raw password is never persisted.
func HashPassword(password string) string {
	digest := sha3.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}
