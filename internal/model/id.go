package model

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// CreateID returns a new random identifier, base58 encoded so it is safe in
// URLs and file names.
func CreateID() string {
	id, _ := uuid.NewRandom()
	return base58.Encode(id[:])
}
