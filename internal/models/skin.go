package models

import "time"

// SourceKind identifies which scraper produced a catalog snapshot
type SourceKind string

const (
	SourceBrowser SourceKind = "browser"
	SourceStatic  SourceKind = "static"
)

// SkinEntry is a single weapon skin and its store price in VP
type SkinEntry struct {
	Name    string `json:"name"`
	PriceVP int    `json:"priceVP"`
}

// CatalogSnapshot is one complete scrape of the weapon skin catalog
type CatalogSnapshot struct {
	Entries   []SkinEntry `json:"entries"`
	FetchedAt time.Time   `json:"fetchedAt"`
	Source    SourceKind  `json:"source"`
}

// Count returns the number of skins in the snapshot
func (s *CatalogSnapshot) Count() int {
	return len(s.Entries)
}

// TotalVP returns the summed VP price of every skin in the snapshot
func (s *CatalogSnapshot) TotalVP() int {
	total := 0
	for _, e := range s.Entries {
		total += e.PriceVP
	}
	return total
}

// DisplayPrice is the converted catalog total, ready for presentation
type DisplayPrice struct {
	Currency  string     `json:"currency"`
	Value     float64    `json:"value"`
	Formatted string     `json:"formatted"`
	TotalVP   int        `json:"total_vp"`
	SkinCount int        `json:"skin_count"`
	Stale     bool       `json:"stale"`
	FetchedAt time.Time  `json:"fetched_at"`
	Source    SourceKind `json:"source"`
}
