// Package mirror provides key-value backends for persisting per-owner
// client state snapshots.
package mirror

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// stateBucket is the single bucket holding all owner snapshots, keyed by
// owner id.
var stateBucket = []byte("client-state")

// boltMirror stores snapshots as JSON values in an embedded bbolt file.
type boltMirror struct {
	db     *bolt.DB
	logger *slog.Logger
}

// NewBoltMirror opens the bbolt file at path and ensures the state bucket
// exists.
func NewBoltMirror(path string, logger *slog.Logger) (repository.StateMirror, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open state mirror file")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)

		return err
	})
	if err != nil {
		_ = db.Close()

		return nil, errors.Wrap(err, "failed to create state bucket")
	}

	return &boltMirror{db: db, logger: logger}, nil
}

func (m *boltMirror) Load(_ context.Context, ownerID string) (*entity.StoredState, error) {
	var raw []byte
	err := m.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket(stateBucket).Get([]byte(ownerID)); value != nil {
			raw = make([]byte, len(value))
			copy(raw, value)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load state snapshot")
	}
	if raw == nil {
		return nil, nil
	}

	state := new(entity.StoredState)
	if err := json.Unmarshal(raw, state); err != nil {
		// A corrupt entry is treated as absent rather than wedging the
		// owner's state forever.
		m.logger.Warn("Discarding unreadable state snapshot",
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)

		return nil, nil
	}

	return state, nil
}

func (m *boltMirror) Save(_ context.Context, ownerID string, state *entity.StoredState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to encode state snapshot")
	}

	err = m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put([]byte(ownerID), raw)
	})
	if err != nil {
		return errors.Wrap(err, "failed to save state snapshot")
	}

	return nil
}

func (m *boltMirror) Close() error {
	return m.db.Close()
}
