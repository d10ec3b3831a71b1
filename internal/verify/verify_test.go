package verify

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

func makeSnapshot(count, priceVP int) *models.CatalogSnapshot {
	entries := make([]models.SkinEntry, count)
	for i := range entries {
		entries[i] = models.SkinEntry{Name: fmt.Sprintf("Skin %d", i), PriceVP: priceVP}
	}
	return &models.CatalogSnapshot{
		Entries:   entries,
		FetchedAt: time.Now(),
		Source:    models.SourceBrowser,
	}
}

func TestVerify(t *testing.T) {
	v := Verifier{MinCatalogSize: 496}

	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"well below threshold", 300, true},
		{"one below threshold", 495, true},
		{"exactly at threshold", 496, false},
		{"above threshold", 520, false},
		{"empty snapshot", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(makeSnapshot(tt.count, 1775))
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify(%d entries) error = %v, wantErr %v", tt.count, err, tt.wantErr)
			}
		})
	}
}

func TestVerifyErrorDetails(t *testing.T) {
	v := Verifier{MinCatalogSize: 496}

	err := v.Verify(makeSnapshot(300, 1775))
	var countErr *CountError
	if !errors.As(err, &countErr) {
		t.Fatalf("Expected CountError, got %v", err)
	}
	if countErr.Found != 300 {
		t.Errorf("Found = %d, want 300", countErr.Found)
	}
	if countErr.Expected != 496 {
		t.Errorf("Expected = %d, want 496", countErr.Expected)
	}
}

func TestStats(t *testing.T) {
	snapshot := &models.CatalogSnapshot{
		Entries: []models.SkinEntry{
			{Name: "Prime Vandal", PriceVP: 1775},
			{Name: "Ion Sheriff", PriceVP: 875},
			{Name: "Elderflame Dagger", PriceVP: 4950},
			{Name: "Prime Vandal", PriceVP: 1775},
		},
		Source: models.SourceStatic,
	}

	stats := Stats(snapshot)

	if stats.SkinCount != 4 {
		t.Errorf("SkinCount = %d, want 4", stats.SkinCount)
	}
	if stats.TotalVP != 9375 {
		t.Errorf("TotalVP = %d, want 9375", stats.TotalVP)
	}
	if stats.MinVP != 875 {
		t.Errorf("MinVP = %d, want 875", stats.MinVP)
	}
	if stats.MaxVP != 4950 {
		t.Errorf("MaxVP = %d, want 4950", stats.MaxVP)
	}
	if stats.AverageVP != 9375.0/4 {
		t.Errorf("AverageVP = %f, want %f", stats.AverageVP, 9375.0/4)
	}
	if len(stats.Duplicates) != 1 || stats.Duplicates[0] != "Prime Vandal" {
		t.Errorf("Duplicates = %v, want [Prime Vandal]", stats.Duplicates)
	}
	if stats.Source != "static" {
		t.Errorf("Source = %q, want static", stats.Source)
	}
}

func TestStatsEmptySnapshot(t *testing.T) {
	stats := Stats(&models.CatalogSnapshot{Source: models.SourceBrowser})
	if stats.SkinCount != 0 || stats.TotalVP != 0 || stats.AverageVP != 0 {
		t.Errorf("Empty snapshot should produce zero stats, got %+v", stats)
	}
}
