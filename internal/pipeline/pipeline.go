// Package pipeline orchestrates the price acquisition flow: check the
// snapshot cache, scrape (primary, then fallback), verify, cache, fetch
// exchange rates, and convert. It encodes the policy that bad scrapes
// never overwrite good cached data and that stale data beats no data.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/valorant-tools/skin-price-tracker/internal/cache"
	"github.com/valorant-tools/skin-price-tracker/internal/convert"
	"github.com/valorant-tools/skin-price-tracker/internal/logger"
	"github.com/valorant-tools/skin-price-tracker/internal/metrics"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
	"github.com/valorant-tools/skin-price-tracker/internal/rates"
	"github.com/valorant-tools/skin-price-tracker/internal/scraper"
	"github.com/valorant-tools/skin-price-tracker/internal/verify"
)

// ErrNoDataAvailable means no cached snapshot exists and no live source
// succeeded. It is the only non-input error a caller cannot recover from.
var ErrNoDataAvailable = errors.New("no skin price data available")

// resultCacheSize bounds the per-currency conversion cache. There are 13
// supported currencies, so this never evicts in practice.
const resultCacheSize = 16

// Recorder receives one notification per successful refresh
type Recorder interface {
	Record(runID string, snapshot *models.CatalogSnapshot) error
}

// Pipeline ties the caches, scrape sources, verifier, rate provider, and
// converter together behind the two presentation-boundary operations.
type Pipeline struct {
	sources   []scraper.CatalogSource // primary first, fallback after
	verifier  verify.Verifier
	rates     rates.Provider
	skinCache *cache.File[models.CatalogSnapshot]
	rateCache *cache.File[models.RateTable]
	recorder  Recorder // optional
	log       *logger.Logger

	// One logical refresh at a time; overlapping calls are serialized and
	// identical concurrent refreshes share a single run.
	mu    sync.Mutex
	group singleflight.Group

	results *lru.Cache[string, memoEntry]
}

// memoEntry is a converted result plus the moment its underlying snapshot
// or rate table expires. Serving past validUntil would present expired data
// as fresh, so hits after that point recompute instead.
type memoEntry struct {
	price      models.DisplayPrice
	validUntil time.Time
}

// New creates a pipeline. Sources are tried in order; recorder may be nil.
func New(
	sources []scraper.CatalogSource,
	verifier verify.Verifier,
	rateProvider rates.Provider,
	skinCache *cache.File[models.CatalogSnapshot],
	rateCache *cache.File[models.RateTable],
	recorder Recorder,
	log *logger.Logger,
) *Pipeline {
	results, _ := lru.New[string, memoEntry](resultCacheSize)
	return &Pipeline{
		sources:   sources,
		verifier:  verifier,
		rates:     rateProvider,
		skinCache: skinCache,
		rateCache: rateCache,
		recorder:  recorder,
		log:       log,
		results:   results,
	}
}

// GetDisplayPrice returns the catalog total converted into the target
// currency. Recoverable failures (scrape, verification, rate fetch) fall
// back to cached data with Stale set; only an unsupported currency, a
// missing rate, or a total absence of data fail the request.
func (p *Pipeline) GetDisplayPrice(ctx context.Context, currency string) (*models.DisplayPrice, error) {
	if !models.IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: %s", convert.ErrUnsupportedCurrency, currency)
	}

	if cached, ok := p.results.Get(currency); ok {
		if time.Now().Before(cached.validUntil) {
			price := cached.price
			return &price, nil
		}
		p.results.Remove(currency)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, catalogStale, err := p.catalog(ctx, false)
	if err != nil {
		return nil, err
	}

	table, rateStale, err := p.rateTable(ctx)
	if err != nil {
		return nil, err
	}

	price, err := convert.Convert(snapshot.TotalVP(), currency, table)
	if err != nil {
		return nil, err
	}
	price.SkinCount = snapshot.Count()
	price.Stale = catalogStale || rateStale
	price.FetchedAt = snapshot.FetchedAt
	price.Source = snapshot.Source

	// Stale results are not memoized so a later call retries the sources.
	// Fresh ones are memoized only until whichever underlying record
	// expires first.
	if !price.Stale {
		validUntil := snapshot.FetchedAt.Add(p.skinCache.TTL())
		if rateExpiry := table.FetchedAt.Add(p.rateCache.TTL()); rateExpiry.Before(validUntil) {
			validUntil = rateExpiry
		}
		p.results.Add(currency, memoEntry{price: *price, validUntil: validUntil})
	}
	return price, nil
}

// RefreshResult summarizes one completed refresh run
type RefreshResult struct {
	RunID     string            `json:"run_id"`
	SkinCount int               `json:"skin_count"`
	TotalVP   int               `json:"total_vp"`
	Source    models.SourceKind `json:"source"`
	Stale     bool              `json:"stale"`
}

// Refresh invalidates in-memory state and re-runs the scrape regardless of
// cache freshness. Concurrent calls share one run.
func (p *Pipeline) Refresh(ctx context.Context) (*RefreshResult, error) {
	v, err, _ := p.group.Do("refresh", func() (interface{}, error) {
		return p.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*RefreshResult), nil
}

func (p *Pipeline) refresh(ctx context.Context) (*RefreshResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	runID := uuid.New().String()
	p.results.Purge()

	snapshot, stale, err := p.catalog(ctx, true)
	if err != nil {
		return nil, err
	}

	if !stale && p.recorder != nil {
		if err := p.recorder.Record(runID, snapshot); err != nil {
			p.log.Warnf("refresh %s: failed to record history: %v", runID, err)
		}
	}

	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	p.log.Infof("refresh %s: %d skins from %s (stale=%v)", runID, snapshot.Count(), snapshot.Source, stale)

	return &RefreshResult{
		RunID:     runID,
		SkinCount: snapshot.Count(),
		TotalVP:   snapshot.TotalVP(),
		Source:    snapshot.Source,
		Stale:     stale,
	}, nil
}

// CatalogStats returns statistics over the current snapshot, serving from
// cache without forcing a scrape when possible.
func (p *Pipeline) CatalogStats(ctx context.Context) (*verify.CatalogStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, _, err := p.catalog(ctx, false)
	if err != nil {
		return nil, err
	}
	stats := verify.Stats(snapshot)
	return &stats, nil
}

// catalog resolves the current snapshot: fresh cache unless force is set,
// then primary source, then fallback exactly once, each gated by
// verification; then stale cache; then ErrNoDataAvailable.
func (p *Pipeline) catalog(ctx context.Context, force bool) (*models.CatalogSnapshot, bool, error) {
	record, err := p.skinCache.Read()
	if err != nil {
		// Corrupt cache files are a miss, never fatal.
		metrics.CacheReadsTotal.WithLabelValues("skins", "corrupt").Inc()
		p.log.Warnf("skin cache unreadable, treating as miss: %v", err)
		record = nil
	}

	if !force && record.Fresh(time.Now()) {
		metrics.CacheReadsTotal.WithLabelValues("skins", "fresh").Inc()
		snapshot := record.Payload
		p.publishCatalogGauges(&snapshot)
		return &snapshot, false, nil
	}
	if record == nil {
		metrics.CacheReadsTotal.WithLabelValues("skins", "miss").Inc()
	}

	var lastErr error
	for _, src := range p.sources {
		snapshot, err := src.Fetch(ctx)
		if err != nil {
			metrics.ScrapeAttemptsTotal.WithLabelValues(src.Name(), "error").Inc()
			p.log.Warnf("source %s failed: %v", src.Name(), err)
			lastErr = err
			continue
		}

		if err := p.verifier.Verify(snapshot); err != nil {
			metrics.ScrapeAttemptsTotal.WithLabelValues(src.Name(), "rejected").Inc()
			p.log.Warnf("source %s rejected: %v", src.Name(), err)
			lastErr = err
			continue
		}

		metrics.ScrapeAttemptsTotal.WithLabelValues(src.Name(), "ok").Inc()
		if err := p.skinCache.Write(*snapshot); err != nil {
			// The scrape itself succeeded; an unwritable cache only costs
			// us the next cold start.
			p.log.Errorf("failed to write skin cache: %v", err)
		}
		p.publishCatalogGauges(snapshot)
		return snapshot, false, nil
	}

	if record != nil {
		metrics.CacheReadsTotal.WithLabelValues("skins", "stale").Inc()
		p.log.Warnf("all sources failed, serving stale snapshot from %s: %v",
			record.Payload.FetchedAt.Format(time.RFC3339), lastErr)
		snapshot := record.Payload
		return &snapshot, true, nil
	}

	return nil, false, fmt.Errorf("%w: %v", ErrNoDataAvailable, lastErr)
}

// rateTable resolves the current exchange rates, independent of which
// catalog branch was taken: fresh cache, then live fetch, then stale cache.
func (p *Pipeline) rateTable(ctx context.Context) (*models.RateTable, bool, error) {
	record, err := p.rateCache.Read()
	if err != nil {
		metrics.CacheReadsTotal.WithLabelValues("rates", "corrupt").Inc()
		p.log.Warnf("rate cache unreadable, treating as miss: %v", err)
		record = nil
	}

	if record.Fresh(time.Now()) {
		metrics.CacheReadsTotal.WithLabelValues("rates", "fresh").Inc()
		table := record.Payload
		return &table, false, nil
	}
	if record == nil {
		metrics.CacheReadsTotal.WithLabelValues("rates", "miss").Inc()
	}

	table, fetchErr := p.rates.FetchRates(ctx)
	if fetchErr == nil {
		metrics.RateFetchesTotal.WithLabelValues("ok").Inc()
		if err := p.rateCache.Write(*table); err != nil {
			p.log.Errorf("failed to write rate cache: %v", err)
		}
		return table, false, nil
	}
	metrics.RateFetchesTotal.WithLabelValues("error").Inc()
	p.log.Warnf("rate provider %s failed: %v", p.rates.Name(), fetchErr)

	if record != nil {
		metrics.CacheReadsTotal.WithLabelValues("rates", "stale").Inc()
		table := record.Payload
		return &table, true, nil
	}

	return nil, false, fmt.Errorf("%w: no exchange rates: %v", ErrNoDataAvailable, fetchErr)
}

func (p *Pipeline) publishCatalogGauges(snapshot *models.CatalogSnapshot) {
	metrics.CatalogSkinCount.Set(float64(snapshot.Count()))
	metrics.CatalogTotalVP.Set(float64(snapshot.TotalVP()))
}
