package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/questline/internal/rpg"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// UserStore persists per-player RPG records.
//
// FindRPG returns a defaulted record for players seen for the first
// time; SaveRPG writes the whole record in one call. Handlers follow a
// load, mutate, save cycle under the router's per-user lock.
type UserStore interface {
	FindRPG(ctx context.Context, userID string) (rpg.Record, error)
	SaveRPG(ctx context.Context, userID string, record rpg.Record) error
}
