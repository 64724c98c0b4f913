// Package history records completed analyses for later inspection.
package history

import (
	"context"
	"sync"
	"time"
)

// Record is the audit row for one completed analysis.
type Record struct {
	ID              string    `json:"id" db:"id"`
	DocumentName    string    `json:"documentName" db:"document_name"`
	TotalFields     int       `json:"totalFields" db:"total_fields"`
	ChunksProcessed int       `json:"chunksProcessed" db:"chunks_processed"`
	ProcessingMS    int64     `json:"processingMs" db:"processing_ms"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Store persists analysis records.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// MemStore keeps records in memory, newest first. Used when no database
// is configured.
type MemStore struct {
	mu      sync.Mutex
	records []Record
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]Record{rec}, s.records...)
	return nil
}

func (s *MemStore) Recent(_ context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]Record, limit)
	copy(out, s.records[:limit])
	return out, nil
}
