package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpctx "github.com/dtroode/studyprofile-server/internal/api/http/context"
	"github.com/dtroode/studyprofile-server/internal/api/http/router"
	httpServer "github.com/dtroode/studyprofile-server/internal/api/http/server"
	"github.com/dtroode/studyprofile-server/internal/config"
	"github.com/dtroode/studyprofile-server/internal/extract"
	"github.com/dtroode/studyprofile-server/internal/logger"
	"github.com/dtroode/studyprofile-server/internal/model"
	"github.com/dtroode/studyprofile-server/internal/repository/memory"
	"github.com/dtroode/studyprofile-server/internal/repository/postgres"
	"github.com/dtroode/studyprofile-server/internal/server"
	"github.com/dtroode/studyprofile-server/internal/service"
	"github.com/dtroode/studyprofile-server/internal/token"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig(envFile)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	log := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel > int(slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage", "error", err)
	}
	defer closeStore()

	parser, err := extract.NewParser()
	if err != nil {
		log.Fatal("failed to initialize candidate parser", "error", err)
	}

	profileService := service.NewProfile(store, parser, nil, log)
	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL), log)
	ctxMgr := httpctx.NewManager()

	engine := router.New(profileService, store, tokenService, ctxMgr, cfg.HTTP.CORSAllowedOrigins, log).Register()
	srv := httpServer.NewHTTPServer(engine, cfg.HTTP.Address)
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		log.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			log.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	log.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	log.Info("shutdown complete")
	return nil
}

// openStore builds the store selected by DATABASE_DRIVER. The returned
// func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (model.ProfileStore, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		if err := store.Load(memory.DefaultSeed()); err != nil {
			return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		log.Warn("using in-memory store, data is lost on exit")
		return store, func() {}, nil
	default:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.Migrate)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewProfileRepository(db), func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close database", "error", err)
			}
		}, nil
	}
}
