package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"socialnetwork/internal/config"
	"socialnetwork/internal/database"
	handlers "socialnetwork/internal/handler"
	"socialnetwork/internal/middleware"
	"socialnetwork/internal/monitoring"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/service"
	"socialnetwork/internal/storage"
)

type App struct {
	Cfg      *config.Config
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
}

// New connects every dependency. Media storage is optional: without it the
// upload endpoints fail and everything else keeps working.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(); err != nil {
			db.CloseDB()
			return nil, err
		}
	}

	var files storage.Storage
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		logrus.WithError(err).Warn("MinIO is unavailable, media uploads are disabled")
	} else {
		files = minioClient
	}

	repo := repository.NewRepository(db.DB)

	return &App{
		Cfg:      cfg,
		DB:       db,
		Repo:     repo,
		Services: service.NewService(repo, cfg, files),
	}, nil
}

func (a *App) Handler() http.Handler {
	h := handlers.NewHandlers(a.Services, a.DB, a.Cfg)

	router := handlers.NewRouter(h,
		monitoring.InstrumentHandler,
		middleware.AuthMiddleware(a.Services.Auth),
	)

	return middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.RecoverMiddleware,
	)
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Cfg.ServerPort),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     server.Addr,
			"database": a.Cfg.DB.DbNAME,
		}).Info("Server started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if err := a.DB.CloseDB(); err != nil {
		logrus.WithError(err).Warn("Failed to close database")
	}
}
