package mirror

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

const redisKeyPrefix = "client-state:"

// redisMirror stores snapshots as JSON strings in Redis, one key per owner.
type redisMirror struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisMirror connects to Redis and verifies the connection with a ping.
func NewRedisMirror(ctx context.Context, addr, password string, db int, logger *slog.Logger) (repository.StateMirror, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	return &redisMirror{client: client, logger: logger}, nil
}

func (m *redisMirror) Load(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	raw, err := m.client.Get(ctx, redisKeyPrefix+ownerID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load state snapshot")
	}

	state := new(entity.StoredState)
	if err := json.Unmarshal(raw, state); err != nil {
		m.logger.Warn("Discarding unreadable state snapshot",
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)

		return nil, nil
	}

	return state, nil
}

func (m *redisMirror) Save(ctx context.Context, ownerID string, state *entity.StoredState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to encode state snapshot")
	}

	if err := m.client.Set(ctx, redisKeyPrefix+ownerID, raw, 0).Err(); err != nil {
		return errors.Wrap(err, "failed to save state snapshot")
	}

	return nil
}

func (m *redisMirror) Close() error {
	return m.client.Close()
}
