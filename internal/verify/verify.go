// Package verify gates scraped catalog snapshots before they may replace
// cached data. A scrape that recovers too few skins means the scraper broke
// or the wiki layout changed, not that the catalog shrank.
package verify

import (
	"fmt"
	"sort"

	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

// CountError reports a snapshot smaller than the expected catalog size
type CountError struct {
	Found    int
	Expected int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("catalog count %d below expected minimum %d", e.Found, e.Expected)
}

// Verifier checks snapshots against a configured minimum catalog size
type Verifier struct {
	MinCatalogSize int
}

// Verify returns a CountError if the snapshot holds fewer entries than the
// expected minimum. Snapshots that fail verification must never overwrite a
// valid cached snapshot.
func (v Verifier) Verify(snapshot *models.CatalogSnapshot) error {
	if snapshot.Count() < v.MinCatalogSize {
		return &CountError{Found: snapshot.Count(), Expected: v.MinCatalogSize}
	}
	return nil
}

// CatalogStats summarizes a snapshot for the stats endpoint
type CatalogStats struct {
	SkinCount  int      `json:"skin_count"`
	TotalVP    int      `json:"total_vp"`
	MinVP      int      `json:"min_vp"`
	MaxVP      int      `json:"max_vp"`
	AverageVP  float64  `json:"average_vp"`
	Duplicates []string `json:"duplicates,omitempty"`
	Source     string   `json:"source"`
}

// Stats computes price statistics and duplicate-name detection over a snapshot
func Stats(snapshot *models.CatalogSnapshot) CatalogStats {
	stats := CatalogStats{
		SkinCount: snapshot.Count(),
		TotalVP:   snapshot.TotalVP(),
		Source:    string(snapshot.Source),
	}
	if stats.SkinCount == 0 {
		return stats
	}

	seen := make(map[string]int, stats.SkinCount)
	stats.MinVP = snapshot.Entries[0].PriceVP
	for _, e := range snapshot.Entries {
		if e.PriceVP < stats.MinVP {
			stats.MinVP = e.PriceVP
		}
		if e.PriceVP > stats.MaxVP {
			stats.MaxVP = e.PriceVP
		}
		seen[e.Name]++
	}
	stats.AverageVP = float64(stats.TotalVP) / float64(stats.SkinCount)

	for name, count := range seen {
		if count > 1 {
			stats.Duplicates = append(stats.Duplicates, name)
		}
	}
	sort.Strings(stats.Duplicates)

	return stats
}
