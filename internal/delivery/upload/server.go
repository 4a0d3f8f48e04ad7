package upload

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"unimarket/config"
	"unimarket/internal/delivery"
	"unimarket/internal/domain/lifecycle"
	"unimarket/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

type UploadParams struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	Logger    *slog.Logger
	FileStore service.FileStore
}

type uploadServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
	store  service.FileStore
}

// NewServer builds the sidecar's echo server and registers its three routes.
func NewServer(params UploadParams) (delivery.Delivery, error) {
	if params.Config.Upload == nil {
		return nil, errors.New("upload config is required")
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())

	handler := NewHandler(
		params.FileStore,
		params.Logger,
		params.Config.Upload.PublicPrefix,
		params.Config.Upload.MaxFiles,
	)
	RegisterRoutes(echoServer, handler)

	delivery := &uploadServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
		store:  params.FileStore,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

// RegisterRoutes sets up the sidecar's routes on the given echo instance.
func RegisterRoutes(e *echo.Echo, handler *Handler) {
	e.POST("/upload", handler.Upload)
	e.POST("/upload-multiple", handler.UploadMultiple)
	e.GET("/images/products/:filename", handler.Serve)
}

func (s *uploadServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.Upload.Port))
	s.logger.Info("Starting upload server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve upload http")
	}

	return nil
}

func (s *uploadServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down upload server")

	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close file store", "error", err.Error())
	}

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
