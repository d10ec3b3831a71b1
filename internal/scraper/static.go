package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/valorant-tools/skin-price-tracker/internal/logger"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

// StaticSource scrapes the wiki with a plain HTTP GET and no rendering
// wait. Prices populated client-side are invisible to it, so it is the
// degraded-mode fallback when the browser source is unavailable.
type StaticSource struct {
	url       string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	log       *logger.Logger
}

// NewStaticSource creates the request-based fallback source. The limiter
// paces requests against the wiki so repeated refreshes stay polite.
func NewStaticSource(url, userAgent string, timeout time.Duration, rps float64, log *logger.Logger) *StaticSource {
	if rps <= 0 {
		rps = 1
	}
	return &StaticSource{
		url:       url,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		log:       log,
	}
}

func (s *StaticSource) Name() string {
	return "wiki (static)"
}

// Fetch downloads the page and parses the table markup as served
func (s *StaticSource) Fetch(ctx context.Context) (*models.CatalogSnapshot, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wiki page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	entries, malformed, err := parseCatalog(resp.Body)
	if err != nil {
		return nil, err
	}
	if malformed > 0 {
		s.log.Warnf("%s: skipped %d malformed rows", s.Name(), malformed)
	}
	s.log.Infof("%s: extracted %d skins", s.Name(), len(entries))

	return &models.CatalogSnapshot{
		Entries:   entries,
		FetchedAt: time.Now(),
		Source:    models.SourceStatic,
	}, nil
}
