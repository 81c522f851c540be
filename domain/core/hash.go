package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// GridHash fingerprints grid content so a persisted mapping can be tied
// back to the exact cells it was derived from.
type GridHash Hash

func (h GridHash) String() string { return Hash(h).String() }

func (h GridHash) IsEmpty() bool { return Hash(h).IsEmpty() }

// ComputeGridHash hashes grid cells row by row. Cell and row boundaries
// use separators that cannot appear in trimmed cell content.
func ComputeGridHash(rows [][]string) GridHash {
	var data strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			data.WriteString(cell)
			data.WriteByte(0x1f) // unit separator
		}
		data.WriteByte(0x1e) // record separator
	}
	return GridHash(NewHash([]byte(data.String())))
}
