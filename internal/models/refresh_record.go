package models

import "time"

// RefreshRecord stores the outcome of one successful catalog refresh.
// One row is written per refresh so the catalog total can be charted over time.
type RefreshRecord struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	RunID     string     `json:"run_id" gorm:"uniqueIndex;not null"`
	Source    SourceKind `json:"source" gorm:"not null"`
	SkinCount int        `json:"skin_count"`
	TotalVP   int        `json:"total_vp"`
	FetchedAt time.Time  `json:"fetched_at" gorm:"index"`
	CreatedAt time.Time  `json:"created_at"`
}
