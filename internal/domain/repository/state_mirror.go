// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

// StateMirror persists one owner's client state (cart, favorites, cached
// user) to a local key-value store so it survives process restarts. The
// container reads an owner's entry once when that owner's state is first
// touched and writes the full snapshot after every mutation. Writes are
// last-writer-wins; there is no merge across concurrent writers.
type StateMirror interface {
	// Load returns the persisted snapshot for the owner, or (nil, nil)
	// when nothing has been stored yet.
	Load(ctx context.Context, ownerID string) (*entity.StoredState, error)

	// Save overwrites the owner's snapshot.
	Save(ctx context.Context, ownerID string, state *entity.StoredState) error

	// Close releases the underlying store.
	Close() error
}
