// Package random provides seed generation for the pseudo-random
// sources used by game mechanics.
//
// Seeds come from crypto/rand so independent bot instances never share
// a roll sequence, while the math/rand sources built from them keep
// outcome resolution reproducible for a given seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSource returns a math/rand source seeded from crypto/rand.
func NewSource() (*rand.Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}
