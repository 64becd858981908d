package parser

import (
	"crypto/sha256"
	"fmt"
)

// ContentHash fingerprints uploaded bytes. It is the cache identity for a
// parsed dataset: same bytes, same table.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
