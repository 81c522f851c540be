package header

import (
	"strconv"
)

// Detection defaults. The strict threshold pair is the default; the
// lenient pair (numeric > 0.1, empty < 0.7) found in older survey
// exports stays reachable through DetectorConfig.
const (
	DefaultNumericRatio = 0.3
	DefaultEmptyRatio   = 0.5

	// DefaultDataStartRow is assumed when no scanned row looks like data
	DefaultDataStartRow = 2

	// maxScanRows bounds the detection scan window
	maxScanRows = 10
)

// DetectorConfig holds the data-row classification thresholds
type DetectorConfig struct {
	NumericRatio float64 // a data row has numericRatio strictly above this
	EmptyRatio   float64 // a data row has emptyRatio strictly below this
}

// DefaultDetectorConfig returns the strict threshold pair
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		NumericRatio: DefaultNumericRatio,
		EmptyRatio:   DefaultEmptyRatio,
	}
}

// DetectDataStart scans at most the first 10 rows and returns the index
// of the first row that looks like data: meaningfully numeric and not
// mostly blank. Rows before it are the header rows. When nothing in the
// window qualifies the default of 2 header rows is assumed.
func DetectDataStart(g *Grid, cfg DetectorConfig) int {
	limit := g.RowCount()
	if limit > maxScanRows {
		limit = maxScanRows
	}

	for i := 0; i < limit; i++ {
		empty, numeric := rowRatios(g.rows[i])
		if numeric > cfg.NumericRatio && empty < cfg.EmptyRatio {
			return i
		}
	}
	return DefaultDataStartRow
}

// rowRatios computes the blank and numeric cell fractions of a row.
// A zero-length row is fully empty and never classifies as data.
func rowRatios(row []string) (emptyRatio, numericRatio float64) {
	if len(row) == 0 {
		return 1, 0
	}

	emptyCount := 0
	numericCount := 0
	for _, cell := range row {
		if cell == "" {
			emptyCount++
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			numericCount++
		}
	}

	total := float64(len(row))
	return float64(emptyCount) / total, float64(numericCount) / total
}
