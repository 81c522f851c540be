package app

import (
	"context"
	"log"

	"gowrangle/domain/core"
	"gowrangle/domain/header"
	"gowrangle/domain/mapping"
	"gowrangle/ports"
)

// WranglerService runs the pipeline over a loaded grid and persists
// the resulting mapping
type WranglerService struct {
	pipeline *PipelineService
	repo     ports.MappingRepository
}

// NewWranglerService creates a wrangler service
func NewWranglerService(pipeline *PipelineService, repo ports.MappingRepository) *WranglerService {
	return &WranglerService{pipeline: pipeline, repo: repo}
}

// Wrangle runs the pipeline and saves a mapping record tagged with the
// source file name and grid fingerprint
func (s *WranglerService) Wrangle(ctx context.Context, sourceFile string, grid *header.Grid) (*mapping.Record, *PipelineResult, error) {
	result, err := s.pipeline.Run(ctx, grid)
	if err != nil {
		return nil, nil, err
	}

	rec := mapping.NewRecord(sourceFile, grid.Hash(), result.DataStartRow, result.HeaderRows, result.Mapping)
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, nil, err
	}
	log.Printf("[Wrangler] Saved mapping %s for %s (%d columns)", rec.ID, sourceFile, len(rec.Columns))

	return rec, result, nil
}

// Get retrieves a persisted mapping
func (s *WranglerService) Get(ctx context.Context, id string) (*mapping.Record, error) {
	mappingID, err := core.ParseMappingID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, mappingID)
}

// List returns persisted mapping summaries
func (s *WranglerService) List(ctx context.Context, limit, offset int) ([]ports.MappingSummary, error) {
	return s.repo.List(ctx, limit, offset)
}
