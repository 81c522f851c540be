package app

import (
	"context"
	"testing"

	"gowrangle/adapters/memory"
	"gowrangle/domain/header"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrangleSavesRecord(t *testing.T) {
	repo := memory.NewMappingRepository()
	cfg := DefaultPipelineConfig()
	cfg.ForcedDataStart = 2
	svc := NewWranglerService(NewPipelineService(&stubAbbreviator{}, cfg), repo)

	grid := header.NewGrid([][]string{
		{"", "", "Q1", "", ""},
		{"", "", "Price", "Quality", "Brand"},
		{"1", "alice", "4", "5", "3"},
	})

	rec, result, err := svc.Wrangle(context.Background(), "survey.xlsx", grid)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "survey.xlsx", rec.SourceFile)
	assert.Equal(t, 2, rec.DataStartRow)
	assert.False(t, rec.GridHash.IsEmpty())
	assert.Len(t, rec.Columns, 5)

	// Round trip through the repository
	loaded, err := svc.Get(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, rec.Columns[2], loaded.Columns[2])

	list, err := svc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].ColumnCount)
}

func TestWrangleRejectsBadGrid(t *testing.T) {
	svc := NewWranglerService(
		NewPipelineService(&stubAbbreviator{}, DefaultPipelineConfig()),
		memory.NewMappingRepository(),
	)

	_, _, err := svc.Wrangle(context.Background(), "empty.csv", header.NewGrid(nil))
	assert.Error(t, err)
}

func TestGetRejectsEmptyID(t *testing.T) {
	svc := NewWranglerService(
		NewPipelineService(&stubAbbreviator{}, DefaultPipelineConfig()),
		memory.NewMappingRepository(),
	)

	_, err := svc.Get(context.Background(), "  ")
	assert.Error(t, err)
}
