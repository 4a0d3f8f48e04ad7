package mirror

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"unimarket/config"
	"unimarket/internal/domain/constants"
	"unimarket/internal/domain/repository"
)

// defaultBoltPath is used when the mirror section is absent so the state
// container always has somewhere to persist.
const defaultBoltPath = "client-state.db"

// MirrorParams holds dependencies for StateMirror, injected by Fx
type MirrorParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewStateMirror creates a StateMirror based on configuration
func NewStateMirror(params MirrorParams) (repository.StateMirror, error) {
	cfg := params.Config.Mirror
	logger := params.Logger

	var mirror repository.StateMirror
	var err error

	provider := constants.MirrorProviderBolt
	if cfg != nil && cfg.Provider != "" {
		provider = cfg.Provider
	}

	switch provider {
	case constants.MirrorProviderBolt:
		path := defaultBoltPath
		if cfg != nil && cfg.Path != "" {
			path = cfg.Path
		}
		logger.Info("Using embedded file store for state mirror",
			slog.String("path", path),
		)

		mirror, err = NewBoltMirror(path, logger)
		if err != nil {
			return nil, err
		}

	case constants.MirrorProviderRedis:
		if cfg == nil || cfg.Redis == nil || cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis provider")
		}
		logger.Info("Using Redis for state mirror",
			slog.String("addr", cfg.Redis.Addr),
		)

		mirror, err = NewRedisMirror(params.Ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown mirror provider: %s", provider)
	}

	// Register lifecycle hook to close the mirror on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing StateMirror")

			return mirror.Close()
		},
	})

	return mirror, nil
}

// Module provides the state mirror FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewStateMirror),
)
