// Package scraper fetches the weapon skin catalog from the wiki.
// Two sources implement the same contract: a browser-based primary that
// waits for the price table to render, and a static HTTP fallback that
// parses whatever the server returns. The pipeline selects between them.
package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

// CatalogSource fetches one complete catalog snapshot
type CatalogSource interface {
	Name() string
	Fetch(ctx context.Context) (*models.CatalogSnapshot, error)
}

var (
	// ErrBrowserUnavailable means the browser engine could not start;
	// the pipeline falls back to the static source.
	ErrBrowserUnavailable = errors.New("browser engine unavailable")

	// ErrPageLoadTimeout means the page did not render the price table
	// within the bounded wait.
	ErrPageLoadTimeout = errors.New("page load timed out")

	// ErrTableNotFound means the expected table structure is absent,
	// which usually signals the wiki layout changed.
	ErrTableNotFound = errors.New("weapon skins table not found")
)

// StatusError reports a non-success HTTP status from the wiki
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wiki returned status %d", e.Code)
}
