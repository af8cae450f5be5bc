package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/amirasaad/payportal/cmd/server/swagger"
	"github.com/amirasaad/payportal/infra/initializer"
	"github.com/amirasaad/payportal/pkg/app"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/webapi"
	log "github.com/charmbracelet/log"
)

const shutdownTimeout = 10 * time.Second

// @title Payments Portal API
// @version 1.0.0
// @description International payments portal: customer transfers reviewed by staff
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close() //nolint:errcheck

	portal := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(portal)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go portal.AuditRecorder.RunRetention(ctx, cfg.Audit.SweepInterval)

	addr := address(cfg.Server)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			"env", cfg.Env,
			"address", addr,
			"tls", cfg.Server.TLSEnabled(),
		)
		if cfg.Server.TLSEnabled() {
			errCh <- fiberApp.ListenTLS(addr, cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
			return
		}
		errCh <- fiberApp.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	portal.AuditRecorder.Wait()
	return nil
}

func address(s *config.Server) string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
