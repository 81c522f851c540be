// Package excel loads spreadsheet and CSV files into the raw cell grid
// the wrangling pipeline runs on.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gowrangle/domain/core"
	"gowrangle/domain/header"

	"github.com/xuri/excelize/v2"
)

// GridReader reads Excel and CSV files into a header.Grid. It
// implements ports.GridSource.
type GridReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewGridReader creates a reader for the given file, picking the format
// from the extension
func NewGridReader(filePath string) *GridReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &GridReader{filePath: filePath, fileType: fileType}
}

// LoadGrid reads the file into a grid of trimmed string cells
func (r *GridReader) LoadGrid(ctx context.Context) (*header.Grid, error) {
	log.Printf("[GridReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.loadCSV()
	case "xlsx":
		return r.loadExcel()
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupported, r.fileType)
	}
}

// loadExcel reads every cell of the first worksheet
func (r *GridReader) loadExcel() (*header.Grid, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := "Sheet1"
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	if !contains(sheets, sheet) {
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[GridReader] Sheet %s read in %.2fms (%d rows)",
		sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return header.NewGrid(rows), nil
}

// loadCSV reads the whole file, tolerating ragged record lengths
func (r *GridReader) loadCSV() (*header.Grid, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadCSVGrid(file)
}

// ReadCSVGrid reads CSV content from any reader into a grid. Used both
// by the file loader and the upload handler.
func ReadCSVGrid(src io.Reader) (*header.Grid, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // survey exports are frequently ragged

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	return header.NewGrid(rows), nil
}

// ReadExcelGrid reads xlsx content from an in-memory reader into a grid
func ReadExcelGrid(src io.Reader) (*header.Grid, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel data: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel data has no sheets")
	}
	sheet := "Sheet1"
	if !contains(sheets, sheet) {
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return header.NewGrid(rows), nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
