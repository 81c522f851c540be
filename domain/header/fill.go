package header

import "strings"

// ForwardFill propagates the last non-blank value rightward across a
// single header row. Leading blanks before the first real value stay
// blank; trailing blanks inherit the last value seen. Single pass, no
// lookahead. The input row is not modified.
func ForwardFill(row []string) []string {
	filled := make([]string, len(row))
	lastSeen := ""
	for i, cell := range row {
		if v := strings.TrimSpace(cell); v != "" {
			lastSeen = v
		}
		filled[i] = lastSeen
	}
	return filled
}

// ForwardFillRows applies ForwardFill to each header row independently
func ForwardFillRows(rows [][]string) [][]string {
	filled := make([][]string, len(rows))
	for i, row := range rows {
		filled[i] = ForwardFill(row)
	}
	return filled
}
