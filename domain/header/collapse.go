package header

import (
	"fmt"
	"strings"
)

// Separator joins the distinct header layers of one column
const Separator = " | "

// PlaceholderName names a column no header row contributed a value for
func PlaceholderName(col int) string {
	return fmt.Sprintf("Column_%d", col)
}

// Collapse folds the filled header rows into one long name per column.
// For each column the non-blank values are collected top to bottom,
// deduplicated preserving first occurrence, and joined with " | ".
// A value repeated in a lower row because it was forward-filled from the
// same origin appears once. Columns with no contribution get the
// Column_<i> placeholder, so no long name is ever blank.
func Collapse(filledRows [][]string) []string {
	numColumns := 0
	for _, row := range filledRows {
		if len(row) > numColumns {
			numColumns = len(row)
		}
	}

	longNames := make([]string, numColumns)
	for col := 0; col < numColumns; col++ {
		parts := make([]string, 0, len(filledRows))
		seen := make(map[string]bool, len(filledRows))
		for _, row := range filledRows {
			if col >= len(row) || row[col] == "" {
				continue
			}
			if seen[row[col]] {
				continue
			}
			seen[row[col]] = true
			parts = append(parts, row[col])
		}

		if len(parts) == 0 {
			longNames[col] = PlaceholderName(col)
		} else {
			longNames[col] = strings.Join(parts, Separator)
		}
	}
	return longNames
}
