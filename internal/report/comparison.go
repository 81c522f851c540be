// Package report renders the per-column comparison artifacts: raw
// header cells next to the collapsed long name and abbreviated short
// name, as CSV and Markdown.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"gowrangle/domain/mapping"
)

// maxRawHeaderRows bounds how many raw header rows the table shows
const maxRawHeaderRows = 4

// Row is one column's comparison entry
type Row struct {
	Column     int
	RawHeaders [maxRawHeaderRows]string
	LongName   string
	ShortName  string
}

// Comparison is the full per-column table
type Comparison struct {
	Rows          []Row
	HeaderRowsCnt int
}

// Build assembles the comparison table from the raw header rows and the
// final mapping. headerRows are the pre-fill rows so the table shows
// what the source actually contained.
func Build(headerRows [][]string, m mapping.ColumnMapping) *Comparison {
	shown := len(headerRows)
	if shown > maxRawHeaderRows {
		shown = maxRawHeaderRows
	}

	rows := make([]Row, 0, len(m))
	for _, col := range m.Columns() {
		row := Row{
			Column:    col,
			LongName:  m[col].LongName,
			ShortName: m[col].ShortName,
		}
		for i := 0; i < shown; i++ {
			if col < len(headerRows[i]) {
				row.RawHeaders[i] = headerRows[i][col]
			}
		}
		rows = append(rows, row)
	}

	return &Comparison{Rows: rows, HeaderRowsCnt: shown}
}

// RenderCSV renders the comparison as CSV
func (c *Comparison) RenderCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	head := []string{"Column"}
	for i := 0; i < maxRawHeaderRows; i++ {
		head = append(head, fmt.Sprintf("Row_%d_Header", i))
	}
	head = append(head, "Long_Name", "Short_Name")
	if err := w.Write(head); err != nil {
		return nil, err
	}

	for _, row := range c.Rows {
		record := []string{strconv.Itoa(row.Column)}
		for i := 0; i < maxRawHeaderRows; i++ {
			record = append(record, row.RawHeaders[i])
		}
		record = append(record, row.LongName, row.ShortName)
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderMarkdown renders the comparison as a Markdown table. Pipe
// characters inside cells are escaped so the table structure survives.
func (c *Comparison) RenderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Column Comparison - All %d Columns\n\n", len(c.Rows))

	b.WriteString("| Column ")
	for i := 0; i < maxRawHeaderRows; i++ {
		fmt.Fprintf(&b, "| Row %d Header ", i)
	}
	b.WriteString("| Long Name | Short Name |\n")

	b.WriteString("|--------|")
	for i := 0; i < maxRawHeaderRows; i++ {
		b.WriteString("-------------|")
	}
	b.WriteString("-----------|------------|\n")

	for _, row := range c.Rows {
		fmt.Fprintf(&b, "| %d ", row.Column)
		for i := 0; i < maxRawHeaderRows; i++ {
			fmt.Fprintf(&b, "| `%s` ", escapePipes(row.RawHeaders[i]))
		}
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", escapePipes(row.LongName), escapePipes(row.ShortName))
	}

	return b.String()
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
