package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plotpirate/server/config"
	"plotpirate/server/internal/api"
	"plotpirate/server/internal/cache"
	"plotpirate/server/internal/dataset"
	"plotpirate/server/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	configureLogger(logger, cfg)

	if cfg.CityConfigPath != "" {
		if err := config.LoadCityConfig(cfg.CityConfigPath); err != nil {
			logger.WithError(err).Fatal("Failed to load city configuration")
		}
	}
	logger.WithField("cities", config.GetCityNames()).Info("City map settings loaded")

	// The dataset is read once and never changes while the server runs
	repo, err := dataset.Open(dataset.Source{
		Path:       cfg.Dataset.Path,
		SQLitePath: cfg.Dataset.SQLitePath,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load dataset")
	}

	searchService := search.NewService(repo, logger)
	searchCache := cache.NewSearchCache(cfg.Cache.MaxEntries, cfg.CacheTTL(), logger)
	defer searchCache.Stop()

	gin.SetMode(cfg.GinMode)
	handler := api.NewHandler(searchService, searchCache, logger)
	router := api.NewRouter(api.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		DelayMin:       time.Duration(cfg.ResponseDelay.MinMs) * time.Millisecond,
		DelayMax:       time.Duration(cfg.ResponseDelay.MaxMs) * time.Millisecond,
	}, handler, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

func configureLogger(logger *logrus.Logger, cfg *config.Config) {
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
