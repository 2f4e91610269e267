// Package bbolt persists game sessions in a BoltDB file: one bucket,
// keyed by session id, JSON-encoded values.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/Seednode/cluebox/internal/apperror"
	"github.com/Seednode/cluebox/internal/session"
)

const sessionBucket = "sessions"

// Store is a BoltDB-backed session repository.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if absent) a store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
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

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save persists a session snapshot under its id.
func (s *Store) Save(ctx context.Context, id string, snap session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("session id is required")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		return bucket.Put([]byte(id), payload)
	})
}

// Load fetches a session snapshot by id. A missing id returns
// session.ErrNotFound; an unreadable record is a corruption error, never a
// silent miss.
func (s *Store) Load(ctx context.Context, id string) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}
	if s == nil || s.db == nil {
		return session.Session{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return session.Session{}, fmt.Errorf("session id is required")
	}

	var snap session.Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		payload := bucket.Get([]byte(id))
		if payload == nil {
			return session.ErrNotFound
		}
		if err := json.Unmarshal(payload, &snap); err != nil {
			return apperror.NewPersistenceError(apperror.CodePersistenceSessionCorrupt,
				"session "+id+" is corrupted: "+err.Error()).WithCause(err)
		}
		return nil
	})
	if err != nil {
		return session.Session{}, err
	}

	return snap, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return fmt.Errorf("create session bucket: %w", err)
		}
		return nil
	})
}
