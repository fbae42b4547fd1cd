// Package handoff is a short-lived key-value channel carrying a conversation
// snapshot across a page navigation so the next view does not re-fetch it.
// Snapshots are consumed once: Take returns and deletes in one transaction.
package handoff

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("handoff")

// Snapshot is the parked conversation state.
type Snapshot struct {
	ConversationID string           `json:"conversationId"`
	Messages       []domain.Message `json:"messages"`
}

// Store persists snapshots in a small BoltDB file.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the handoff store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening handoff store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating handoff bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Put parks a snapshot for the user, replacing any previous one.
func (s *Store) Put(userID string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(userID), data)
	})
}

// Take returns the parked snapshot for the user and clears it. A corrupt
// payload is discarded rather than surfaced.
func (s *Store) Take(userID string) (Snapshot, bool, error) {
	var snap Snapshot
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		data := b.Get([]byte(userID))
		if data == nil {
			return nil
		}
		if err := b.Delete([]byte(userID)); err != nil {
			return err
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			logger.L.Warn("discarding corrupt handoff snapshot", "user_id", userID, "error", err)
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("taking snapshot: %w", err)
	}
	return snap, found, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
