package mirror

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

func sampleState() *entity.StoredState {
	return &entity.StoredState{
		CartProduct: []entity.CartLineItem{
			{
				Product: entity.Product{
					ID:    "prod-1",
					Title: "Calculus Textbook",
					Price: 25,
				},
				Quantity:  2,
				MainImage: "/images/products/calc.webp",
			},
		},
		FavoriteProduct: []entity.FavoriteEntry{
			{
				Product: entity.Product{
					ID:    "prod-2",
					Title: "Desk Lamp",
					Price: 10,
				},
				Quantity: 1,
			},
		},
		CurrentUser: &entity.User{
			Email:     "alice@uni.edu",
			FirstName: "Alice",
		},
	}
}

func assertRoundTrip(t *testing.T, mirror repository.StateMirror) {
	t.Helper()
	ctx := context.Background()

	absent, err := mirror.Load(ctx, "alice@uni.edu")
	require.NoError(t, err)
	assert.Nil(t, absent)

	state := sampleState()
	require.NoError(t, mirror.Save(ctx, "alice@uni.edu", state))

	loaded, err := mirror.Load(ctx, "alice@uni.edu")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.CartProduct, 1)
	assert.Equal(t, "prod-1", loaded.CartProduct[0].ID)
	assert.Equal(t, 2, loaded.CartProduct[0].Quantity)
	require.Len(t, loaded.FavoriteProduct, 1)
	assert.Equal(t, "prod-2", loaded.FavoriteProduct[0].ID)
	require.NotNil(t, loaded.CurrentUser)
	assert.Equal(t, "alice@uni.edu", loaded.CurrentUser.Email)

	// Overwrite wins, no merging.
	state.CartProduct = nil
	require.NoError(t, mirror.Save(ctx, "alice@uni.edu", state))

	loaded, err = mirror.Load(ctx, "alice@uni.edu")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Empty(t, loaded.CartProduct)

	// Other owners stay isolated.
	other, err := mirror.Load(ctx, "bob@uni.edu")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestBoltMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	mirror, err := NewBoltMirror(path, slog.Default())
	require.NoError(t, err)
	defer mirror.Close()

	assertRoundTrip(t, mirror)
}

func TestBoltMirrorSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	mirror, err := NewBoltMirror(path, slog.Default())
	require.NoError(t, err)
	require.NoError(t, mirror.Save(ctx, "alice@uni.edu", sampleState()))
	require.NoError(t, mirror.Close())

	reopened, err := NewBoltMirror(path, slog.Default())
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx, "alice@uni.edu")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.CartProduct, 1)
}

func TestRedisMirror(t *testing.T) {
	server := miniredis.RunT(t)

	mirror, err := NewRedisMirror(context.Background(), server.Addr(), "", 0, slog.Default())
	require.NoError(t, err)
	defer mirror.Close()

	assertRoundTrip(t, mirror)
}

func TestRedisMirrorCorruptEntryTreatedAsAbsent(t *testing.T) {
	server := miniredis.RunT(t)

	mirror, err := NewRedisMirror(context.Background(), server.Addr(), "", 0, slog.Default())
	require.NoError(t, err)
	defer mirror.Close()

	require.NoError(t, server.Set(redisKeyPrefix+"alice@uni.edu", "not json"))

	loaded, err := mirror.Load(context.Background(), "alice@uni.edu")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
