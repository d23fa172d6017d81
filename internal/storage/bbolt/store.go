// Package bbolt provides the BoltDB-backed user store. Records are
// stored as JSON documents keyed by chat user id.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/questline/internal/rpg"
	"go.etcd.io/bbolt"
)

const userBucket = "user_rpg"

// Store provides a BoltDB-backed player record store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FindRPG fetches the player record for a user, creating a defaulted
// record on first access.
func (s *Store) FindRPG(ctx context.Context, userID string) (rpg.Record, error) {
	if err := ctx.Err(); err != nil {
		return rpg.Record{}, err
	}
	if s == nil || s.db == nil {
		return rpg.Record{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return rpg.Record{}, fmt.Errorf("user id is required")
	}

	var record rpg.Record
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(userBucket))
		if bucket == nil {
			return fmt.Errorf("user bucket is missing")
		}
		payload := bucket.Get(userKey(userID))
		if payload == nil {
			return nil
		}
		if err := json.Unmarshal(payload, &record); err != nil {
			return fmt.Errorf("unmarshal record: %w", err)
		}
		found = true
		return nil
	})
	if err != nil {
		return rpg.Record{}, err
	}

	if !found {
		record = rpg.NewRecord()
	}
	record.Normalize()
	return record, nil
}

// SaveRPG persists the full player record.
func (s *Store) SaveRPG(ctx context.Context, userID string, record rpg.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(userBucket))
		if bucket == nil {
			return fmt.Errorf("user bucket is missing")
		}
		return bucket.Put(userKey(userID), payload)
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(userBucket))
		if err != nil {
			return fmt.Errorf("create user bucket: %w", err)
		}
		return nil
	})
}

func userKey(userID string) []byte {
	return []byte(userID)
}
