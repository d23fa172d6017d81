// Package storage defines the persistence interfaces consumed by the
// bot. Implementations live in subpackages (bbolt for player records,
// sqlite for the league cache).
package storage
