// Package cache provides a single-record JSON file cache with a TTL.
// Each cache instance owns one file; the pipeline keeps one for the skin
// catalog snapshot and one for the exchange rate table. Deleting a cache
// file is a supported recovery action and simply forces a re-fetch.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrCorrupt marks a cache file that exists but cannot be decoded.
// Callers treat it the same as a miss.
var ErrCorrupt = errors.New("cache file corrupt")

// Record wraps a cached payload with its freshness metadata
type Record[T any] struct {
	FetchedAt  time.Time `json:"fetchedAt"`
	TTLSeconds int       `json:"ttlSeconds"`
	Payload    T         `json:"payload"`
}

// Fresh reports whether the record is still within its TTL at the given time
func (r *Record[T]) Fresh(now time.Time) bool {
	if r == nil {
		return false
	}
	return now.Sub(r.FetchedAt) < time.Duration(r.TTLSeconds)*time.Second
}

// File is a TTL cache backed by a single JSON file
type File[T any] struct {
	path string
	ttl  time.Duration
}

// NewFile creates a cache bound to path with the given TTL
func NewFile[T any](path string, ttl time.Duration) *File[T] {
	return &File[T]{path: path, ttl: ttl}
}

// Path returns the cache file location
func (f *File[T]) Path() string {
	return f.path
}

// TTL returns the configured record lifetime
func (f *File[T]) TTL() time.Duration {
	return f.ttl
}

// Read loads the persisted record. A missing file returns (nil, nil).
// A file that cannot be read or decoded returns (nil, ErrCorrupt-wrapped
// error); the caller logs it and proceeds as on a miss.
func (f *File[T]) Read() (*Record[T], error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var record Record[T]
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &record, nil
}

// Write persists the payload with the current timestamp and configured TTL.
// The record lands via a temp file and rename so a crash mid-write leaves
// either the old record or the new one, never a torn file.
func (f *File[T]) Write(payload T) error {
	record := Record[T]{
		FetchedAt:  time.Now(),
		TTLSeconds: int(f.ttl / time.Second),
		Payload:    payload,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Fresh reports whether the record is within its TTL right now
func (f *File[T]) Fresh(record *Record[T]) bool {
	return record.Fresh(time.Now())
}

// Remove deletes the cache file, forcing the next read to miss
func (f *File[T]) Remove() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
