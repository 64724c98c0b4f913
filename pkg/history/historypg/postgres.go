// Package historypg is the PostgreSQL implementation of history.Store.
//
// Expected schema:
//
//	CREATE TABLE analyses (
//	    id               UUID PRIMARY KEY,
//	    document_name    TEXT NOT NULL,
//	    total_fields     INT NOT NULL,
//	    chunks_processed INT NOT NULL,
//	    processing_ms    BIGINT NOT NULL,
//	    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
package historypg

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/fieldlift/fieldlift/pkg/errx"
	"github.com/fieldlift/fieldlift/pkg/history"
)

// PostgresStore persists analysis records in the analyses table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) history.Store {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, rec history.Record) error {
	query := `
		INSERT INTO analyses (
			id, document_name, total_fields, chunks_processed, processing_ms, created_at
		) VALUES (
			:id, :document_name, :total_fields, :chunks_processed, :processing_ms, :created_at
		)`

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		return errx.Wrap(err, "failed to save analysis record", errx.TypeInternal).
			WithDetail("record_id", rec.ID)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, document_name, total_fields, chunks_processed, processing_ms, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1`

	records := []history.Record{}
	if err := s.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, errx.Wrap(err, "failed to list analysis records", errx.TypeInternal)
	}
	return records, nil
}
