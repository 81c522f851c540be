package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"gowrangle/domain/core"
	"gowrangle/domain/header"
	"gowrangle/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAbbreviator lets tests script per-batch behavior
type stubAbbreviator struct {
	mu      sync.Mutex
	batches []ports.AbbreviationBatch

	// failBatchStart marks batch start indices that return an error
	failBatchStart map[int]bool
	// omitColumns marks absolute indices silently missing from responses
	omitColumns map[int]bool
	// extraColumns are out-of-batch indices injected into every response
	extraColumns map[int]string
}

func (s *stubAbbreviator) AbbreviateBatch(ctx context.Context, batch ports.AbbreviationBatch) (map[int]string, error) {
	s.mu.Lock()
	s.batches = append(s.batches, batch)
	s.mu.Unlock()

	if s.failBatchStart[batch.StartIndex] {
		return nil, errors.New("collaborator exploded")
	}

	result := make(map[int]string)
	for i := range batch.LongNames {
		col := batch.StartIndex + i
		if s.omitColumns[col] {
			continue
		}
		result[col] = fmt.Sprintf("short_%d", col)
	}
	for col, name := range s.extraColumns {
		result[col] = name
	}
	return result, nil
}

func TestRunTwoRowSurveyHeader(t *testing.T) {
	grid := header.NewGrid([][]string{
		{"", "", "Q1", "", ""},
		{"", "", "Price", "Quality", "Brand"},
	})

	cfg := DefaultPipelineConfig()
	cfg.ForcedDataStart = 2
	svc := NewPipelineService(&stubAbbreviator{}, cfg)

	result, err := svc.Run(context.Background(), grid)
	require.NoError(t, err)

	assert.Equal(t, 2, result.DataStartRow)
	assert.Equal(t, []string{"", "", "Q1", "Q1", "Q1"}, result.FilledHeaders[0])
	assert.Equal(t, []string{"", "", "Price", "Quality", "Brand"}, result.FilledHeaders[1])
	assert.Equal(t,
		[]string{"Column_0", "Column_1", "Q1 | Price", "Q1 | Quality", "Q1 | Brand"},
		result.LongNames)
	assert.Len(t, result.Mapping, 5)
}

func TestRunRepeatedHeaderTextCollapsesOnce(t *testing.T) {
	grid := header.NewGrid([][]string{
		{"Brand"},
		{"Brand"},
		{"1"},
	})

	svc := NewPipelineService(&stubAbbreviator{}, DefaultPipelineConfig())
	result, err := svc.Run(context.Background(), grid)
	require.NoError(t, err)

	assert.Equal(t, []string{"Brand"}, result.LongNames)
	assert.NotContains(t, result.LongNames[0], " | ")
}

func TestRunFailedBatchFallsBack(t *testing.T) {
	// 75 columns, batch size 25, middle batch fails
	row := make([]string, 75)
	for i := range row {
		row[i] = fmt.Sprintf("Header %d", i)
	}
	grid := header.NewGrid([][]string{row, row})

	stub := &stubAbbreviator{failBatchStart: map[int]bool{25: true}}
	cfg := DefaultPipelineConfig()
	cfg.ForcedDataStart = 2
	svc := NewPipelineService(stub, cfg)

	result, err := svc.Run(context.Background(), grid)
	require.NoError(t, err)
	require.Len(t, result.Mapping, 75)
	assert.Len(t, stub.batches, 3)

	for col := 0; col < 75; col++ {
		entry := result.Mapping[col]
		if col >= 25 && col <= 49 {
			assert.Equal(t, fmt.Sprintf("col_%d", col), entry.ShortName,
				"column %d should use the fallback name", col)
		} else {
			assert.Equal(t, fmt.Sprintf("short_%d", col), entry.ShortName,
				"column %d should use the collaborator name", col)
		}
	}
}

func TestRunPartialBatchResponse(t *testing.T) {
	row := []string{"A", "B", "C", "D"}
	grid := header.NewGrid([][]string{row})

	stub := &stubAbbreviator{omitColumns: map[int]bool{1: true, 3: true}}
	cfg := DefaultPipelineConfig()
	cfg.ForcedDataStart = 1
	svc := NewPipelineService(stub, cfg)

	result, err := svc.Run(context.Background(), grid)
	require.NoError(t, err)
	require.Len(t, result.Mapping, 4)

	assert.Equal(t, "short_0", result.Mapping[0].ShortName)
	assert.Equal(t, "col_1", result.Mapping[1].ShortName)
	assert.Equal(t, "short_2", result.Mapping[2].ShortName)
	assert.Equal(t, "col_3", result.Mapping[3].ShortName)
}

func TestRunDropsOutOfBatchIndices(t *testing.T) {
	grid := header.NewGrid([][]string{{"A", "B"}})

	stub := &stubAbbreviator{extraColumns: map[int]string{40: "bogus"}}
	cfg := DefaultPipelineConfig()
	cfg.ForcedDataStart = 1
	svc := NewPipelineService(stub, cfg)

	result, err := svc.Run(context.Background(), grid)
	require.NoError(t, err)
	assert.Len(t, result.Mapping, 2)
	_, present := result.Mapping[40]
	assert.False(t, present, "out-of-batch index must not leak into the mapping")
}

func TestRunConcurrentBatchesDeterministic(t *testing.T) {
	row := make([]string, 60)
	for i := range row {
		row[i] = fmt.Sprintf("H%d", i)
	}
	grid := header.NewGrid([][]string{row})

	cfg := DefaultPipelineConfig()
	cfg.ForcedDataStart = 1
	cfg.BatchSize = 10
	cfg.MaxConcurrentBatches = 4

	var first []string
	for run := 0; run < 5; run++ {
		svc := NewPipelineService(&stubAbbreviator{}, cfg)
		result, err := svc.Run(context.Background(), grid)
		require.NoError(t, err)
		require.Len(t, result.Mapping, 60)

		flat := make([]string, 0, 60)
		for _, col := range result.Mapping.Columns() {
			flat = append(flat, result.Mapping[col].ShortName)
		}
		if first == nil {
			first = flat
		} else {
			assert.Equal(t, first, flat, "run %d diverged", run)
		}
	}
}

func TestRunDetectionFallsBackToDefault(t *testing.T) {
	grid := header.NewGrid([][]string{
		{"a", "b"},
		{"c", "d"},
		{"e", "f"},
	})

	svc := NewPipelineService(&stubAbbreviator{}, DefaultPipelineConfig())
	result, err := svc.Run(context.Background(), grid)
	require.NoError(t, err)
	assert.Equal(t, header.DefaultDataStartRow, result.DataStartRow)
	assert.Len(t, result.HeaderRows, 2)
}

func TestRunRejectsEmptyGrid(t *testing.T) {
	svc := NewPipelineService(&stubAbbreviator{}, DefaultPipelineConfig())

	_, err := svc.Run(context.Background(), header.NewGrid(nil))
	assert.ErrorIs(t, err, core.ErrEmptyGrid)

	_, err = svc.Run(context.Background(), header.NewGrid([][]string{{}, {}}))
	assert.ErrorIs(t, err, core.ErrNoColumns)
}

func TestRunLongNamePlaceholdersReachAbbreviator(t *testing.T) {
	grid := header.NewGrid([][]string{
		{"", "Q1"},
		{"", "Price"},
	})

	stub := &stubAbbreviator{}
	cfg := DefaultPipelineConfig()
	cfg.ForcedDataStart = 2
	svc := NewPipelineService(stub, cfg)

	_, err := svc.Run(context.Background(), grid)
	require.NoError(t, err)
	require.Len(t, stub.batches, 1)
	assert.True(t, strings.HasPrefix(stub.batches[0].LongNames[0], "Column_"),
		"placeholder long names are abbreviated like any other")
}
