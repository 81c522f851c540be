package mapping

import "fmt"

// FallbackShortName names a column the abbreviation step produced
// nothing for
func FallbackShortName(col int) string {
	return fmt.Sprintf("col_%d", col)
}

// Build zips long names with abbreviated short names into a total
// ColumnMapping. shortNames is keyed by absolute column index; any
// column it omits gets the deterministic col_<i> fallback, so every
// column with a long name has exactly one entry regardless of how much
// of the abbreviation step succeeded.
func Build(longNames []string, shortNames map[int]string) ColumnMapping {
	m := make(ColumnMapping, len(longNames))
	for col, longName := range longNames {
		short, ok := shortNames[col]
		if !ok || short == "" {
			short = FallbackShortName(col)
		}
		m[col] = ColumnName{LongName: longName, ShortName: short}
	}
	return m
}
