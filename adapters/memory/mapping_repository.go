// Package memory provides an in-memory mapping repository for tests
// and database-less runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"gowrangle/domain/core"
	"gowrangle/domain/mapping"
	"gowrangle/ports"
)

// MappingRepository implements ports.MappingRepository in memory
type MappingRepository struct {
	mu      sync.RWMutex
	records map[core.MappingID]*mapping.Record
}

// NewMappingRepository creates an empty in-memory repository
func NewMappingRepository() *MappingRepository {
	return &MappingRepository{records: make(map[core.MappingID]*mapping.Record)}
}

func (r *MappingRepository) Save(ctx context.Context, rec *mapping.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *rec
	r.records[rec.ID] = &stored
	return nil
}

func (r *MappingRepository) GetByID(ctx context.Context, id core.MappingID) (*mapping.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, core.NewNotFoundError("mapping", id.String())
	}
	out := *rec
	return &out, nil
}

func (r *MappingRepository) List(ctx context.Context, limit, offset int) ([]ports.MappingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*mapping.Record, 0, len(r.records))
	for _, rec := range r.records {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[j].CreatedAt.Before(all[i].CreatedAt)
	})

	if limit <= 0 {
		limit = 50
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	summaries := make([]ports.MappingSummary, 0, end-offset)
	for _, rec := range all[offset:end] {
		summaries = append(summaries, ports.MappingSummary{
			ID:          rec.ID,
			SourceFile:  rec.SourceFile,
			ColumnCount: len(rec.Columns),
			CreatedAt:   rec.CreatedAt,
		})
	}
	return summaries, nil
}
