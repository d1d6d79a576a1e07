// Package bootstrap owns the process lifecycle: configuration, logging, the
// engine collaborator, the HTTP router, and graceful shutdown.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	domainimage "ocr-gateway/internal/domain/image"
	"ocr-gateway/internal/domain/ocr"
	"ocr-gateway/internal/platform/config"
	apierrors "ocr-gateway/internal/platform/errors"
	"ocr-gateway/internal/platform/logging"
	httptransport "ocr-gateway/internal/transport/http"
	"ocr-gateway/internal/transport/http/ocrapi"
)

const shutdownTimeout = 5 * time.Second

// Run starts the gateway and blocks until shutdown. The only fatal error
// after startup is a failed socket bind.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := os.Getenv("OCR_GATEWAY_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return apierrors.Wrap(apierrors.KindConfig, "load_config", "failed to load configuration", err)
	}

	logger, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.File,
	})
	if err != nil {
		return apierrors.Wrap(apierrors.KindBootstrap, "init_logger", "failed to initialize logger", err)
	}
	defer logger.Close()

	logger.Info("Initializing OCR engine...")
	engine, err := ocr.NewTesseract(cfg.Engine, logger)
	if err != nil {
		return apierrors.Wrap(apierrors.KindBootstrap, "init_engine", "failed to initialize OCR engine", err)
	}
	defer engine.Close()

	fetcher := domainimage.NewFetcher(cfg.Fetch, logger)
	resolver := domainimage.NewResolver(cfg.Server.MaxBodyBytes, fetcher, logger)

	router, err := httptransport.Build(httptransport.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return apierrors.Wrap(apierrors.KindBootstrap, "build_router", "failed to build HTTP router", err)
	}

	service, err := ocrapi.NewService(resolver, engine, logger)
	if err != nil {
		return apierrors.Wrap(apierrors.KindBootstrap, "init_service", "failed to create OCR API service", err)
	}
	if err := service.Register(ctx, router.API); err != nil {
		return apierrors.Wrap(apierrors.KindBootstrap, "register_routes", "failed to register routes", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port)
	listener, boundAddr, err := listen(addr, cfg.Server, logger)
	if err != nil {
		return apierrors.Wrap(apierrors.KindBootstrap, "listen", "failed to bind listening socket", err)
	}

	printBanner(logger, boundAddr)

	server := &http.Server{
		Handler:      router.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// listen binds the server socket. When binding the loopback address fails,
// it retries on all interfaces before giving up.
func listen(addr string, cfg config.ServerConfig, logger *logging.Logger) (net.Listener, string, error) {
	listener, err := net.Listen("tcp", addr)
	if err == nil {
		return listener, addr, nil
	}

	if cfg.IP == "127.0.0.1" {
		logger.Warn("Failed to bind %s: %v, trying 0.0.0.0...", addr, err)
		fallback := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
		listener, retryErr := net.Listen("tcp", fallback)
		if retryErr == nil {
			return listener, fallback, nil
		}
		return nil, "", retryErr
	}

	return nil, "", err
}

func printBanner(logger *logging.Logger, addr string) {
	logger.Info("========================================")
	logger.Info("%s HTTP Server", ocrapi.ServiceName)
	logger.Info("Version: %s", ocrapi.Version)
	logger.Info("========================================")
	logger.Info("Server listening on %s", addr)
	logger.Info("API Endpoints:")
	logger.Info("  POST http://%s/api/ocr         - Upload image for OCR", addr)
	logger.Info("  POST http://%s/api/ocr/base64  - Submit base64 encoded image", addr)
	logger.Info("  POST http://%s/api/ocr/url     - Submit image URL for OCR", addr)
	logger.Info("  GET  http://%s/api/health      - Health check", addr)
	logger.Info("  GET  http://%s/api/version     - Version info", addr)
	logger.Info("Examples:")
	logger.Info("  curl -X POST http://%s/api/ocr -F \"image=@test.jpg\"", addr)
	logger.Info("  curl -X POST http://%s/api/ocr/url -H \"Content-Type: application/json\" -d '{\"url\":\"http://example.com/image.jpg\"}'", addr)
}
