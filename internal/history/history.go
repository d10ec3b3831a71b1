// Package history records successful catalog refreshes so the aggregate
// price can be charted over time.
package history

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/valorant-tools/skin-price-tracker/internal/logger"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

// Service persists refresh records in sqlite
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewService creates the history service
func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: db, log: log}
}

// Record stores one row for a successful refresh
func (s *Service) Record(runID string, snapshot *models.CatalogSnapshot) error {
	record := models.RefreshRecord{
		RunID:     runID,
		Source:    snapshot.Source,
		SkinCount: snapshot.Count(),
		TotalVP:   snapshot.TotalVP(),
		FetchedAt: snapshot.FetchedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	s.log.Infof("history: recorded refresh %s (%d skins, %d VP total)",
		runID, record.SkinCount, record.TotalVP)
	return nil
}

// History retrieves refresh records for a given period
func (s *Service) History(period string) ([]models.RefreshRecord, error) {
	now := time.Now()
	var startDate time.Time

	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "all":
		startDate = time.Time{}
	default:
		startDate = now.AddDate(0, -1, 0)
	}

	query := s.db.Order("fetched_at ASC")
	if !startDate.IsZero() {
		query = query.Where("fetched_at >= ?", startDate)
	}

	var records []models.RefreshRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Latest returns the most recent refresh record, or nil if none exists.
// Database failures are returned, not folded into the empty case.
func (s *Service) Latest() (*models.RefreshRecord, error) {
	var record models.RefreshRecord
	if err := s.db.Order("fetched_at DESC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
