package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/armaan-yadav/apna-resume/internal/adapter/cache"
	httpadapter "github.com/armaan-yadav/apna-resume/internal/adapter/http"
	repo "github.com/armaan-yadav/apna-resume/internal/adapter/repository"
	"github.com/armaan-yadav/apna-resume/internal/adapter/ws"
	"github.com/armaan-yadav/apna-resume/internal/config"
	"github.com/armaan-yadav/apna-resume/internal/infrastructure/migration"
	"github.com/armaan-yadav/apna-resume/internal/render"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
	"github.com/armaan-yadav/apna-resume/pkg/ai"
	infra "github.com/armaan-yadav/apna-resume/pkg/infrastructure"
)

type resumeStore interface {
	usecase.Gateway
	usecase.ResumeCreator
	httpadapter.ResumeLister
	Ping(ctx context.Context) error
}

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// persistence: postgres when configured, in-memory otherwise
	var store resumeStore
	if cfg.Database.URL != "" {
		pool, err := infra.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool, logger); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		store = repo.NewResumeRepo(pool, logger)
	} else {
		logger.Warn("DATABASE_URL not set, documents are kept in memory")
		store = repo.NewMemoryRepo()
	}

	checkers := []httpadapter.Checker{httpadapter.CheckFunc{Label: "database", Fn: store.Ping}}

	deps := httpadapter.Deps{
		Creator: store,
		Lister:  store,
		Logger:  logger,
		Timeout: cfg.App.RequestTimeout,
	}

	if cfg.Redis.Addr != "" {
		rc := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.TTL, logger)
		defer rc.Close()
		deps.Cache = rc
		checkers = append(checkers, httpadapter.CheckFunc{Label: "redis", Fn: rc.Ping})
	}
	if cfg.AI.ServiceURL != "" {
		deps.Assistant = ai.NewClient(cfg.AI.ServiceURL, logger)
	}

	selector, err := render.NewSelector()
	if err != nil {
		logger.Error("templates failed to load", "error", err)
		os.Exit(1)
	}
	deps.Renderer = selector

	sessions := usecase.NewSessions(store, cfg.App.SessionTTL, logger)
	deps.Sessions = sessions
	go sessions.Run(ctx)

	app := httpadapter.NewApp(httpadapter.NewHandler(deps), httpadapter.NewHealthHandler(checkers...), logger, cfg.App.RequestTimeout)

	hub := ws.NewHub(sessions, selector, logger)
	previewSrv := ws.NewServer(cfg.Preview.WSAddr, ws.NewHandler(hub, cfg.App.RequestTimeout))

	go func() {
		logger.Info("preview server listening", "addr", cfg.Preview.WSAddr)
		if err := previewSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("preview server failed", "error", err)
			stop()
		}
	}()

	go func() {
		logger.Info("api listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			logger.Error("api server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", "error", err)
	}
	if err := previewSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("preview shutdown failed", "error", err)
	}
}
