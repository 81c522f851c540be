// Package mapping holds the pipeline's durable output: the per-column
// long name / short name mapping.
package mapping

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gowrangle/domain/core"
)

// ColumnName is the pair of names derived for one column
type ColumnName struct {
	LongName  string `json:"longName"`
	ShortName string `json:"shortName"`
}

// ColumnMapping maps 0-based column index to its derived names. Keys
// are integers internally; string keys exist only on the JSON boundary.
type ColumnMapping map[int]ColumnName

// MarshalJSON serializes with string column-index keys, matching the
// column_mapping.json consumers expect.
func (m ColumnMapping) MarshalJSON() ([]byte, error) {
	out := make(map[string]ColumnName, len(m))
	for col, name := range m {
		out[strconv.Itoa(col)] = name
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the string-keyed wire form
func (m *ColumnMapping) UnmarshalJSON(data []byte) error {
	raw := make(map[string]ColumnName)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ColumnMapping, len(raw))
	for key, name := range raw {
		col, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("column key %q is not an integer: %w", key, err)
		}
		out[col] = name
	}
	*m = out
	return nil
}

// Columns returns the column indices in ascending order
func (m ColumnMapping) Columns() []int {
	cols := make([]int, 0, len(m))
	for col := range m {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// Record is a persisted mapping with its provenance. HeaderRows keeps
// the raw (pre-fill) header cells so comparison reports can be rebuilt
// later without the source file.
type Record struct {
	ID           core.MappingID `json:"id"`
	SourceFile   string         `json:"sourceFile"`
	GridHash     core.GridHash  `json:"gridHash"`
	DataStartRow int            `json:"dataStartRow"`
	HeaderRows   [][]string     `json:"headerRows"`
	Columns      ColumnMapping  `json:"columns"`
	CreatedAt    core.Timestamp `json:"createdAt"`
}

// NewRecord builds a Record with a fresh ID and timestamp
func NewRecord(sourceFile string, gridHash core.GridHash, dataStartRow int, headerRows [][]string, columns ColumnMapping) *Record {
	return &Record{
		ID:           core.MappingID(core.NewID()),
		SourceFile:   sourceFile,
		GridHash:     gridHash,
		DataStartRow: dataStartRow,
		HeaderRows:   headerRows,
		Columns:      columns,
		CreatedAt:    core.Now(),
	}
}
