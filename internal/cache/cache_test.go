package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testPayload struct {
	Total int `json:"total"`
}

func TestWriteThenReadIsFresh(t *testing.T) {
	dir := t.TempDir()
	c := NewFile[testPayload](filepath.Join(dir, "test.json"), time.Hour)

	if err := c.Write(testPayload{Total: 42}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	record, err := c.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if record == nil {
		t.Fatal("Expected a record after write, got nil")
	}
	if record.Payload.Total != 42 {
		t.Errorf("Expected payload total 42, got %d", record.Payload.Total)
	}
	if !c.Fresh(record) {
		t.Error("Record should be fresh immediately after write")
	}
	if record.TTLSeconds != 3600 {
		t.Errorf("Expected TTL 3600 seconds, got %d", record.TTLSeconds)
	}
}

func TestFreshness(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		fetchedAt time.Time
		ttl       int
		want      bool
	}{
		{"just written", now, 3600, true},
		{"halfway through", now.Add(-30 * time.Minute), 3600, true},
		{"exactly at ttl", now.Add(-3600 * time.Second), 3600, false},
		{"past ttl", now.Add(-2 * time.Hour), 3600, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record[testPayload]{FetchedAt: tt.fetchedAt, TTLSeconds: tt.ttl}
			if got := r.Fresh(now); got != tt.want {
				t.Errorf("Fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNilRecordIsNotFresh(t *testing.T) {
	var r *Record[testPayload]
	if r.Fresh(time.Now()) {
		t.Error("nil record should not be fresh")
	}
}

func TestMissingFileIsAMiss(t *testing.T) {
	c := NewFile[testPayload](filepath.Join(t.TempDir(), "absent.json"), time.Hour)

	record, err := c.Read()
	if err != nil {
		t.Errorf("Missing file should not be an error, got %v", err)
	}
	if record != nil {
		t.Errorf("Missing file should return nil record, got %+v", record)
	}
}

func TestCorruptFileIsAMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewFile[testPayload](path, time.Hour)
	record, err := c.Read()
	if record != nil {
		t.Errorf("Corrupt file should return nil record, got %+v", record)
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Expected ErrCorrupt, got %v", err)
	}
}

func TestWriteOverwritesPreviousRecord(t *testing.T) {
	c := NewFile[testPayload](filepath.Join(t.TempDir(), "test.json"), time.Hour)

	if err := c.Write(testPayload{Total: 1}); err != nil {
		t.Fatal(err)
	}
	if err := c.Write(testPayload{Total: 2}); err != nil {
		t.Fatal(err)
	}

	record, err := c.Read()
	if err != nil || record == nil {
		t.Fatalf("Read failed: record=%v err=%v", record, err)
	}
	if record.Payload.Total != 2 {
		t.Errorf("Expected latest payload 2, got %d", record.Payload.Total)
	}
}

func TestWriteToUnwritableLocationFails(t *testing.T) {
	c := NewFile[testPayload]("/dev/null/impossible/test.json", time.Hour)
	if err := c.Write(testPayload{Total: 1}); err == nil {
		t.Error("Expected an error writing to an impossible path")
	}
}

func TestRemoveForcesMiss(t *testing.T) {
	c := NewFile[testPayload](filepath.Join(t.TempDir(), "test.json"), time.Hour)

	if err := c.Write(testPayload{Total: 7}); err != nil {
		t.Fatal(err)
	}
	if err := c.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	record, err := c.Read()
	if record != nil || err != nil {
		t.Errorf("Expected a clean miss after Remove, got record=%v err=%v", record, err)
	}

	// Removing an already-missing file is not an error
	if err := c.Remove(); err != nil {
		t.Errorf("Remove on missing file should succeed, got %v", err)
	}
}
