// Command pricecheck runs the price pipeline once and prints the catalog
// total in the requested currency. It is the scriptable stand-in for the
// GUI front-end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valorant-tools/skin-price-tracker/internal/cache"
	"github.com/valorant-tools/skin-price-tracker/internal/config"
	"github.com/valorant-tools/skin-price-tracker/internal/logger"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
	"github.com/valorant-tools/skin-price-tracker/internal/pipeline"
	"github.com/valorant-tools/skin-price-tracker/internal/rates"
	"github.com/valorant-tools/skin-price-tracker/internal/scraper"
	"github.com/valorant-tools/skin-price-tracker/internal/verify"
)

func main() {
	currency := flag.String("currency", "USD", "target currency code")
	forceRefresh := flag.Bool("refresh", false, "ignore cached data and re-scrape")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	skinCache := cache.NewFile[models.CatalogSnapshot](
		filepath.Join(cfg.CacheDir, "skin_prices.json"), cfg.SkinCacheTTL)
	rateCache := cache.NewFile[models.RateTable](
		filepath.Join(cfg.CacheDir, "exchange_rates.json"), cfg.RatesCacheTTL)

	sources := []scraper.CatalogSource{
		scraper.NewBrowserSource(cfg.WikiURL, cfg.UserAgent, cfg.BrowserTimeout, log),
		scraper.NewStaticSource(cfg.WikiURL, cfg.UserAgent, cfg.HTTPTimeout, cfg.ScrapeRateLimitRPS, log),
	}

	p := pipeline.New(
		sources,
		verify.Verifier{MinCatalogSize: cfg.MinCatalogSize},
		rates.NewHTTPProvider(cfg.RatesBaseURL, cfg.HTTPTimeout, log),
		skinCache,
		rateCache,
		nil,
		log,
	)

	ctx := context.Background()

	if *forceRefresh {
		if _, err := p.Refresh(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "refresh failed: %v\n", err)
			os.Exit(1)
		}
	}

	price, err := p.GetDisplayPrice(ctx, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Current amount for %d skins: %s", price.SkinCount, price.Formatted)
	if price.Stale {
		fmt.Printf(" (stale, fetched %s)", price.FetchedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}
