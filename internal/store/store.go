// Package store writes analysis results to Postgres so the support dashboard
// can query them. The export is optional and runs as one bounded pass after
// each conversation is analyzed.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suporteware/chatminer/internal/taxonomy"
)

// Store wraps a pgx pool plus the taxonomy used to annotate stored messages.
type Store struct {
	pool *pgxpool.Pool
	tax  *taxonomy.Taxonomy
}

func New(ctx context.Context, databaseURL string, tax *taxonomy.Taxonomy) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool, tax: tax}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}
