package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGridCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	content := ",,Q1,,\n,,Price,Quality,Brand\n1,alice,4,5,3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	grid, err := NewGridReader(path).LoadGrid(context.Background())
	if err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}

	if grid.RowCount() != 3 {
		t.Errorf("RowCount = %d, want 3", grid.RowCount())
	}
	if got := grid.Cell(0, 2); got != "Q1" {
		t.Errorf("Cell(0,2) = %q, want Q1", got)
	}
	if got := grid.Cell(1, 3); got != "Quality" {
		t.Errorf("Cell(1,3) = %q, want Quality", got)
	}
}

func TestLoadGridCSVRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := "a,b,c\nx\n1,2,3,4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	grid, err := NewGridReader(path).LoadGrid(context.Background())
	if err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}
	if grid.ColumnCount() != 4 {
		t.Errorf("ColumnCount = %d, want 4", grid.ColumnCount())
	}
	if got := grid.Cell(1, 1); got != "" {
		t.Errorf("short row Cell(1,1) = %q, want blank", got)
	}
}

func TestLoadGridTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.csv")
	if err := os.WriteFile(path, []byte("  Q1  ,  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	grid, err := NewGridReader(path).LoadGrid(context.Background())
	if err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}
	if got := grid.Cell(0, 0); got != "Q1" {
		t.Errorf("Cell(0,0) = %q, want trimmed Q1", got)
	}
	if got := grid.Cell(0, 1); got != "" {
		t.Errorf("Cell(0,1) = %q, want blank", got)
	}
}

func TestLoadGridMissingFile(t *testing.T) {
	_, err := NewGridReader("/nonexistent/file.csv").LoadGrid(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestReadCSVGrid(t *testing.T) {
	grid, err := ReadCSVGrid(strings.NewReader("h1,h2\n1,2\n"))
	if err != nil {
		t.Fatalf("ReadCSVGrid: %v", err)
	}
	if grid.RowCount() != 2 || grid.Cell(0, 1) != "h2" {
		t.Errorf("unexpected grid content")
	}
}
