package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/valorant-tools/skin-price-tracker/internal/logger"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

const skinTableSelector = "table.wikitable.sortable"

// BrowserSource scrapes the wiki with a headless browser. The wiki
// populates parts of the price table client-side, so a rendered DOM
// recovers the full catalog where a static fetch cannot.
type BrowserSource struct {
	url       string
	userAgent string
	timeout   time.Duration
	log       *logger.Logger
}

// NewBrowserSource creates the browser-based primary source
func NewBrowserSource(url, userAgent string, timeout time.Duration, log *logger.Logger) *BrowserSource {
	return &BrowserSource{
		url:       url,
		userAgent: userAgent,
		timeout:   timeout,
		log:       log,
	}
}

func (s *BrowserSource) Name() string {
	return "wiki (browser)"
}

// Fetch loads the wiki page in a scoped headless browser session, waits for
// the price table to render, and parses the resulting DOM. The browser
// context is cancelled on every exit path so no browser process outlives
// the call.
func (s *BrowserSource) Fetch(ctx context.Context) (*models.CatalogSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.UserAgent(s.userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// An empty Run starts the browser; a launch failure here means no
	// usable browser engine and the pipeline should fall back.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserUnavailable, err)
	}

	var pageHTML string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(s.url),
		chromedp.WaitVisible(skinTableSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s did not render %q within %v",
				ErrPageLoadTimeout, s.url, skinTableSelector, s.timeout)
		}
		return nil, fmt.Errorf("browser scrape failed: %w", err)
	}

	entries, malformed, err := parseCatalog(strings.NewReader(pageHTML))
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
		Source:    models.SourceBrowser,
	}, nil
}
