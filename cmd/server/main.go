package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/schoolsharthi/webclient/internal/config"
	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/logging"
	"github.com/schoolsharthi/webclient/internal/metrics"
	"github.com/schoolsharthi/webclient/internal/query"
	"github.com/schoolsharthi/webclient/internal/session"
	"github.com/schoolsharthi/webclient/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	collector := metrics.NewCollector()

	disk, err := query.OpenDisk(cfg.CacheDBPath)
	if err != nil {
		logger.Error("cache db open failed, running memory-only", "error", err)
		disk = nil
	}

	cache := query.NewCache(query.CacheOptions{
		TTL:     cfg.CacheTTL,
		Disk:    disk,
		Metrics: collector,
		Logger:  logging.Component(logger, "cache"),
	})

	api := gateway.New(cfg.APIBaseURL, gateway.Options{
		Timeout: cfg.UpstreamTimeout,
		RPS:     cfg.UpstreamRPS,
		Burst:   cfg.UpstreamBurst,
		Metrics: collector,
		Logger:  logging.Component(logger, "gateway"),
	})

	sessions := session.NewStore(api.Auth, logging.Component(logger, "session"))

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	web.Register(e, &web.Deps{
		API:      api,
		Sessions: sessions,
		Cache:    cache,
		Metrics:  collector,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	cache.Close()
	if disk != nil {
		if err := disk.Close(); err != nil {
			logger.Error("cache db close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
