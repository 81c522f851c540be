package ports

import (
	"context"

	"gowrangle/domain/header"
)

// GridSource supplies the raw cell grid the pipeline runs on. Loaders
// normalize missing cells to "" before the grid reaches the core.
type GridSource interface {
	LoadGrid(ctx context.Context) (*header.Grid, error)
}
