package main

import (
	"context"
	"log/slog"
	"os"

	"unimarket/config"
	"unimarket/internal/delivery"
	"unimarket/internal/delivery/upload"
	"unimarket/internal/domain/service"
	logs "unimarket/internal/infra/log"
	"unimarket/internal/infra/storage"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newFileStore,
	)
}

// newFileStore opens the directory-backed blob bucket the sidecar stores
// images in.
func newFileStore(cfg *config.Config) (service.FileStore, error) {
	if cfg.Upload == nil {
		return nil, errors.New("upload config is required")
	}

	return storage.NewFileStore(cfg.Upload.Dir)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				upload.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
