package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hauspet-lab/hauspet-intake/internal/admin"
	corecfg "github.com/hauspet-lab/hauspet-intake/internal/core/config"
	"github.com/hauspet-lab/hauspet-intake/internal/core/storage"
	"github.com/hauspet-lab/hauspet-intake/internal/core/storage/memory"
	"github.com/hauspet-lab/hauspet-intake/internal/core/storage/postgres"
	redisstore "github.com/hauspet-lab/hauspet-intake/internal/core/storage/redis"
	"github.com/hauspet-lab/hauspet-intake/internal/intake"
	"github.com/hauspet-lab/hauspet-intake/internal/mailer"
	"github.com/hauspet-lab/hauspet-intake/internal/middleware"
	"github.com/hauspet-lab/hauspet-intake/internal/migrations"
	"github.com/hauspet-lab/hauspet-intake/internal/recovery"
	"github.com/hauspet-lab/hauspet-intake/internal/server"
)

func main() {
	configPath := flag.String("config", "hauspet.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Local .env files hold secrets during development; missing is fine.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	// 1. Load Configuration
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		slog.Info("Config file not found, using defaults and env", "path", *configPath)
		*configPath = ""
	}
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage
	store, cleanup, err := buildStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("Storage initialized", "backend", cfg.Storage.Backend, "durable", store.Durable())

	// 3. Initialize Email
	mail := mailer.New(cfg.Email.APIKey, cfg.Email.From, cfg.Email.AdminTo)
	if !mail.Configured() {
		slog.Warn("Email API key not set; confirmation emails disabled")
	}

	// 4. Initialize Services
	if cfg.Admin.Key == "" {
		slog.Warn("Admin key not set; admin endpoints are disabled")
	}
	adminAuth := middleware.AdminKey(cfg.Admin.Key)

	intakeSvc := intake.NewService(store, mail)
	recoverySvc := recovery.NewService(store)
	adminSvc := admin.NewService(store, mail, cfg.Admin.Key)

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode)
	intakeSvc.RegisterRoutes(srv.Engine)
	recoverySvc.RegisterRoutes(srv.Engine, adminAuth)
	adminSvc.RegisterRoutes(srv.Engine, adminAuth)

	// 6. Start
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// buildStore constructs the configured submission store backend. The returned
// cleanup func closes backend connections and is safe to call once.
func buildStore(cfg *corecfg.Config) (storage.SubmissionStore, func(), error) {
	switch cfg.Storage.Backend {
	case "postgres":
		adapter, err := postgres.NewAdapter(
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
		)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunMigrations(adapter.DB(), cfg.Database.AutoMigrate); err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return adapter, func() { adapter.Close() }, nil

	case "redis":
		adapter, err := redisstore.NewAdapter(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.Key,
		)
		if err != nil {
			return nil, nil, err
		}
		return adapter, func() { adapter.Close() }, nil

	default:
		return memory.NewStore(), func() {}, nil
	}
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
