// Package postgres persists column mappings via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gowrangle/domain/core"
	"gowrangle/domain/mapping"
	"gowrangle/ports"

	"github.com/jmoiron/sqlx"
)

// Schema is the mappings table DDL, applied by cmd/migrate
const Schema = `
CREATE TABLE IF NOT EXISTS column_mappings (
	id             TEXT PRIMARY KEY,
	source_file    TEXT NOT NULL,
	grid_hash      TEXT NOT NULL,
	data_start_row INTEGER NOT NULL,
	header_rows    JSONB NOT NULL,
	columns        JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_column_mappings_created_at ON column_mappings (created_at DESC);
`

// mappingRepository implements ports.MappingRepository
type mappingRepository struct {
	db *sqlx.DB
}

// NewMappingRepository creates a postgres-backed mapping repository
func NewMappingRepository(db *sqlx.DB) ports.MappingRepository {
	return &mappingRepository{db: db}
}

// Save inserts a mapping record
func (r *mappingRepository) Save(ctx context.Context, rec *mapping.Record) error {
	columnsJSON, err := json.Marshal(rec.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}
	headerRowsJSON, err := json.Marshal(rec.HeaderRows)
	if err != nil {
		return fmt.Errorf("failed to marshal header rows: %w", err)
	}

	query := `INSERT INTO column_mappings (
		id, source_file, grid_hash, data_start_row, header_rows, columns, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID.String(), rec.SourceFile, rec.GridHash.String(),
		rec.DataStartRow, headerRowsJSON, columnsJSON, rec.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save mapping: %w", err)
	}
	return nil
}

// GetByID retrieves a mapping record by its ID
func (r *mappingRepository) GetByID(ctx context.Context, id core.MappingID) (*mapping.Record, error) {
	query := `SELECT id, source_file, grid_hash, data_start_row, header_rows, columns, created_at
	FROM column_mappings WHERE id = $1`

	var (
		rec            mapping.Record
		idStr          string
		hashStr        string
		headerRowsJSON []byte
		columnsJSON    []byte
		createdAt      sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&idStr, &rec.SourceFile, &hashStr, &rec.DataStartRow, &headerRowsJSON, &columnsJSON, &createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("mapping", id.String())
		}
		return nil, fmt.Errorf("failed to get mapping: %w", err)
	}

	rec.ID = core.MappingID(idStr)
	rec.GridHash = core.GridHash(hashStr)
	if createdAt.Valid {
		rec.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	if err := json.Unmarshal(headerRowsJSON, &rec.HeaderRows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal header rows: %w", err)
	}
	if err := json.Unmarshal(columnsJSON, &rec.Columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}

	return &rec, nil
}

// List returns mapping summaries, newest first
func (r *mappingRepository) List(ctx context.Context, limit, offset int) ([]ports.MappingSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, source_file, columns, created_at
	FROM column_mappings
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings: %w", err)
	}
	defer rows.Close()

	var summaries []ports.MappingSummary
	for rows.Next() {
		var (
			idStr       string
			sourceFile  string
			columnsJSON []byte
			createdAt   sql.NullTime
		)
		if err := rows.Scan(&idStr, &sourceFile, &columnsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}

		var columns mapping.ColumnMapping
		if err := json.Unmarshal(columnsJSON, &columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
		}

		summary := ports.MappingSummary{
			ID:          core.MappingID(idStr),
			SourceFile:  sourceFile,
			ColumnCount: len(columns),
		}
		if createdAt.Valid {
			summary.CreatedAt = core.NewTimestamp(createdAt.Time)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mappings: %w", err)
	}

	return summaries, nil
}
