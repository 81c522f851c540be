package app

import (
	"context"
	"log"
	"sync"

	"gowrangle/domain/header"
	"gowrangle/domain/mapping"
	"gowrangle/ports"

	"golang.org/x/sync/semaphore"
)

// PipelineConfig tunes the wrangling pipeline
type PipelineConfig struct {
	// BatchSize bounds how many long names go to the abbreviator per call
	BatchSize int
	// MaxConcurrentBatches bounds in-flight abbreviation calls; 1 means
	// strictly sequential batches
	MaxConcurrentBatches int64
	// Detector holds the data-row classification thresholds
	Detector header.DetectorConfig
	// ForcedDataStart skips detection when >= 0
	ForcedDataStart int
}

// DefaultPipelineConfig returns the standard pipeline settings
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		BatchSize:            25,
		MaxConcurrentBatches: 1,
		Detector:             header.DefaultDetectorConfig(),
		ForcedDataStart:      -1,
	}
}

// PipelineResult carries the durable output plus the intermediate
// values downstream reporting wants to show
type PipelineResult struct {
	DataStartRow  int
	HeaderRows    [][]string
	FilledHeaders [][]string
	LongNames     []string
	Mapping       mapping.ColumnMapping
}

// PipelineService runs the header wrangling pipeline: detect header
// rows, forward fill them, collapse them into long names, abbreviate in
// batches, and build the total column mapping. Each stage is a pure
// function over its predecessor's output; the only fallible external
// step is abbreviation, which degrades to col_<i> fallback names
// instead of failing the run.
type PipelineService struct {
	abbreviator ports.AbbreviatorPort
	config      PipelineConfig
}

// NewPipelineService creates a pipeline service
func NewPipelineService(abbreviator ports.AbbreviatorPort, config PipelineConfig) *PipelineService {
	if config.BatchSize <= 0 {
		config.BatchSize = 25
	}
	if config.MaxConcurrentBatches <= 0 {
		config.MaxConcurrentBatches = 1
	}
	return &PipelineService{abbreviator: abbreviator, config: config}
}

// Run executes the pipeline over a loaded grid. Only an empty or
// zero-column grid is fatal; every other stage resolves its own
// ambiguity and the result always covers every column.
func (s *PipelineService) Run(ctx context.Context, grid *header.Grid) (*PipelineResult, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	dataStart := s.config.ForcedDataStart
	if dataStart < 0 {
		dataStart = header.DetectDataStart(grid, s.config.Detector)
		log.Printf("[Pipeline] Detected data start row %d (%d header rows)", dataStart, dataStart)
	} else {
		log.Printf("[Pipeline] Data start row forced to %d", dataStart)
	}

	headerRows := grid.HeaderRows(dataStart)
	filled := header.ForwardFillRows(headerRows)
	longNames := header.Collapse(filled)
	log.Printf("[Pipeline] Collapsed %d header rows into %d long names", len(filled), len(longNames))

	shortNames := s.abbreviateAll(ctx, longNames)

	return &PipelineResult{
		DataStartRow:  dataStart,
		HeaderRows:    headerRows,
		FilledHeaders: filled,
		LongNames:     longNames,
		Mapping:       mapping.Build(longNames, shortNames),
	}, nil
}

// abbreviateAll partitions long names into batches and collects short
// names keyed by absolute column index. Batches run under a weighted
// semaphore; merging is keyed by index so completion order never
// changes the output. A failed batch contributes nothing and its
// columns fall back during Build.
func (s *PipelineService) abbreviateAll(ctx context.Context, longNames []string) map[int]string {
	shortNames := make(map[int]string, len(longNames))
	if len(longNames) == 0 {
		return shortNames
	}

	sem := semaphore.NewWeighted(s.config.MaxConcurrentBatches)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for start := 0; start < len(longNames); start += s.config.BatchSize {
		end := start + s.config.BatchSize
		if end > len(longNames) {
			end = len(longNames)
		}
		batch := ports.AbbreviationBatch{
			StartIndex: start,
			LongNames:  longNames[start:end],
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Printf("[Pipeline] Abbreviation cancelled at batch %d-%d: %v", start, end-1, err)
			break
		}

		wg.Add(1)
		go func(batch ports.AbbreviationBatch, last int) {
			defer wg.Done()
			defer sem.Release(1)

			result, err := s.abbreviator.AbbreviateBatch(ctx, batch)
			if err != nil {
				log.Printf("[Pipeline] Abbreviation failed for batch %d-%d, using fallback names: %v",
					batch.StartIndex, last, err)
				return
			}
			if len(result) < len(batch.LongNames) {
				log.Printf("[Pipeline] Batch %d-%d returned %d of %d entries, missing columns use fallback names",
					batch.StartIndex, last, len(result), len(batch.LongNames))
			}

			mu.Lock()
			for col, short := range result {
				if col < batch.StartIndex || col > last {
					log.Printf("[Pipeline] Dropping out-of-batch column %d from batch %d-%d", col, batch.StartIndex, last)
					continue
				}
				shortNames[col] = short
			}
			mu.Unlock()
		}(batch, end-1)
	}

	wg.Wait()
	return shortNames
}
