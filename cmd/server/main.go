package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/valorant-tools/skin-price-tracker/internal/api"
	"github.com/valorant-tools/skin-price-tracker/internal/cache"
	"github.com/valorant-tools/skin-price-tracker/internal/config"
	"github.com/valorant-tools/skin-price-tracker/internal/database"
	"github.com/valorant-tools/skin-price-tracker/internal/history"
	"github.com/valorant-tools/skin-price-tracker/internal/logger"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
	"github.com/valorant-tools/skin-price-tracker/internal/pipeline"
	"github.com/valorant-tools/skin-price-tracker/internal/rates"
	"github.com/valorant-tools/skin-price-tracker/internal/scraper"
	"github.com/valorant-tools/skin-price-tracker/internal/verify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	skinCache := cache.NewFile[models.CatalogSnapshot](
		filepath.Join(cfg.CacheDir, "skin_prices.json"), cfg.SkinCacheTTL)
	rateCache := cache.NewFile[models.RateTable](
		filepath.Join(cfg.CacheDir, "exchange_rates.json"), cfg.RatesCacheTTL)

	sources := []scraper.CatalogSource{
		scraper.NewBrowserSource(cfg.WikiURL, cfg.UserAgent, cfg.BrowserTimeout, log),
		scraper.NewStaticSource(cfg.WikiURL, cfg.UserAgent, cfg.HTTPTimeout, cfg.ScrapeRateLimitRPS, log),
	}

	historyService := history.NewService(db, log)

	p := pipeline.New(
		sources,
		verify.Verifier{MinCatalogSize: cfg.MinCatalogSize},
		rates.NewHTTPProvider(cfg.RatesBaseURL, cfg.HTTPTimeout, log),
		skinCache,
		rateCache,
		historyService,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background refresh worker with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Errorf("PANIC in refresh worker: %v - restarting in 30 seconds", r)
					}
				}()
				runRefreshWorker(ctx, p, cfg.RefreshInterval, log)
			}()

			select {
			case <-ctx.Done():
				return
			case <-time.After(30 * time.Second):
				log.Warn("Refresh worker restarting after panic recovery...")
			}
		}
	}()

	router := api.SetupRouter(p, historyService, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// runRefreshWorker refreshes the catalog on startup and then on a fixed
// interval until the context is cancelled.
func runRefreshWorker(ctx context.Context, p *pipeline.Pipeline, interval time.Duration, log *logger.Logger) {
	log.Infof("Refresh worker started: will refresh catalog every %v", interval)

	if _, err := p.Refresh(ctx); err != nil {
		log.Warnf("Refresh worker: initial refresh failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Refresh worker stopping...")
			return
		case <-ticker.C:
			if _, err := p.Refresh(ctx); err != nil {
				log.Warnf("Refresh worker: refresh failed: %v", err)
			}
		}
	}
}
