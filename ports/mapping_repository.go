package ports

import (
	"context"

	"gowrangle/domain/core"
	"gowrangle/domain/mapping"
)

// MappingSummary is the listing view of a persisted mapping
type MappingSummary struct {
	ID          core.MappingID `json:"id"`
	SourceFile  string         `json:"sourceFile"`
	ColumnCount int            `json:"columnCount"`
	CreatedAt   core.Timestamp `json:"createdAt"`
}

// MappingRepository persists pipeline output
type MappingRepository interface {
	Save(ctx context.Context, rec *mapping.Record) error
	GetByID(ctx context.Context, id core.MappingID) (*mapping.Record, error)
	List(ctx context.Context, limit, offset int) ([]MappingSummary, error)
}
