package ports

import "context"

// AbbreviationBatch is one bounded slice of long names sent to the
// abbreviation collaborator. StartIndex is the absolute column index of
// LongNames[0]; batch-local positions translate back to absolute
// indices as StartIndex+i.
type AbbreviationBatch struct {
	StartIndex int
	LongNames  []string
}

// Columns returns the absolute column indices covered by the batch
func (b AbbreviationBatch) Columns() []int {
	cols := make([]int, len(b.LongNames))
	for i := range b.LongNames {
		cols[i] = b.StartIndex + i
	}
	return cols
}

// AbbreviatorPort turns long column names into short aliases. The
// result is keyed by absolute column index. Implementations may return
// fewer entries than requested; callers must treat missing indices as
// failures for those columns, not for the pipeline. An error means the
// whole batch produced nothing usable.
type AbbreviatorPort interface {
	AbbreviateBatch(ctx context.Context, batch AbbreviationBatch) (map[int]string, error)
}
