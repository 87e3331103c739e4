package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ApplicationTables are the tables the service cannot run without.
var ApplicationTables = []string{"users", "profiles", "follows", "posts"}

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

// CountTablesDB counts how many of ApplicationTables exist in the public schema.
func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ANY($1)
	`, pq.Array(ApplicationTables))
	if err != nil {
		return 0, fmt.Errorf("failed to count database tables: %w", err)
	}

	return count, nil
}
