package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"champ-draft-backend/internal/config"
	"champ-draft-backend/internal/httpapi"
	"champ-draft-backend/internal/hub"
	"champ-draft-backend/internal/room"
	"champ-draft-backend/internal/stats"
)

func main() {
	_ = config.LoadDotEnv(".env")
	cfg := config.Load()

	logger := zap.Must(zap.NewProduction())
	if cfg.Dev {
		logger = zap.Must(zap.NewDevelopment())
	}
	defer func() { _ = logger.Sync() }()

	var (
		recorder stats.Recorder
		reader   httpapi.StatsReader
	)
	if cfg.DatabaseURL != "" {
		rec, err := stats.NewDBRecorder(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("connect stats database", zap.Error(err))
		}
		recorder, reader = rec, rec
	} else {
		rec := stats.NewFileRecorder(cfg.StatsFile, logger)
		recorder, reader = rec, rec
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := room.NewStore(cfg.CountdownSeconds)
	h := hub.New(ctx, store, recorder, hub.NewClock(), logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(h, reader, logger, cfg.AllowedOrigins),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
