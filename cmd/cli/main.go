package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gowrangle/adapters/excel"
	"gowrangle/adapters/llm"
	"gowrangle/app"
	"gowrangle/domain/header"
	"gowrangle/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "wrangle",
		Short: "Normalize messy multi-row spreadsheet headers into a column mapping",
	}

	rootCmd.AddCommand(
		newMapCmd(),
		newDetectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMapCmd() *cobra.Command {
	var (
		outDir       string
		batchSize    int
		dataStart    int
		numericRatio float64
		emptyRatio   float64
		concurrency  int
		model        string
		useMock      bool
	)

	cmd := &cobra.Command{
		Use:   "map [file]",
		Short: "Run the header wrangling pipeline and write the column mapping",
		Long: `Run the full pipeline over an .xlsx or .csv file: detect header rows,
forward fill them, collapse them into long names, abbreviate via LLM,
and write column_mapping.json plus comparison tables.

Example: wrangle map survey.xlsx --batch-size 25 --out-dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]

			abbreviator, err := buildAbbreviator(model, useMock)
			if err != nil {
				return err
			}

			cfg := app.DefaultPipelineConfig()
			cfg.BatchSize = batchSize
			cfg.ForcedDataStart = dataStart
			cfg.MaxConcurrentBatches = int64(concurrency)
			cfg.Detector = header.DetectorConfig{
				NumericRatio: numericRatio,
				EmptyRatio:   emptyRatio,
			}

			return runMap(cmd.Context(), filePath, outDir, app.NewPipelineService(abbreviator, cfg))
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for output files")
	cmd.Flags().IntVar(&batchSize, "batch-size", 25, "Long names per abbreviation call")
	cmd.Flags().IntVar(&dataStart, "data-start", -1, "Force the data start row, skipping detection")
	cmd.Flags().Float64Var(&numericRatio, "numeric-ratio", header.DefaultNumericRatio, "Data-row numeric cell threshold")
	cmd.Flags().Float64Var(&emptyRatio, "empty-ratio", header.DefaultEmptyRatio, "Data-row empty cell threshold")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Concurrent abbreviation batches")
	cmd.Flags().StringVar(&model, "model", "gpt-4.1-mini", "LLM model for abbreviation")
	cmd.Flags().BoolVar(&useMock, "mock", false, "Use the mock abbreviator (no API calls)")

	return cmd
}

func newDetectCmd() *cobra.Command {
	var (
		numericRatio float64
		emptyRatio   float64
	)

	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Report where the data rows start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := excel.NewGridReader(args[0]).LoadGrid(cmd.Context())
			if err != nil {
				return err
			}
			if err := grid.Validate(); err != nil {
				return err
			}

			cfg := header.DetectorConfig{NumericRatio: numericRatio, EmptyRatio: emptyRatio}
			dataStart := header.DetectDataStart(grid, cfg)
			fmt.Printf("Grid: %d rows x %d columns\n", grid.RowCount(), grid.ColumnCount())
			fmt.Printf("Data starts at row %d (%d header rows)\n", dataStart, dataStart)
			return nil
		},
	}

	cmd.Flags().Float64Var(&numericRatio, "numeric-ratio", header.DefaultNumericRatio, "Data-row numeric cell threshold")
	cmd.Flags().Float64Var(&emptyRatio, "empty-ratio", header.DefaultEmptyRatio, "Data-row empty cell threshold")

	return cmd
}

// buildAbbreviator wires the real LLM abbreviator, or the mock when
// asked for or when no API key is configured
func buildAbbreviator(model string, useMock bool) (*llm.Abbreviator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if useMock || apiKey == "" {
		if !useMock {
			log.Println("OPENAI_API_KEY not set, falling back to mock abbreviator")
		}
		return llm.NewAbbreviatorWithClient(llm.Config{Model: model}, &llm.MockLLMClient{}), nil
	}

	return llm.NewAbbreviator(llm.Config{
		Model:       model,
		APIKey:      apiKey,
		BaseURL:     os.Getenv("LLM_BASE_URL"),
		Temperature: 0.2,
		MaxTokens:   3000,
		Timeout:     180 * time.Second,
	})
}

func runMap(ctx context.Context, filePath, outDir string, pipeline *app.PipelineService) error {
	grid, err := excel.NewGridReader(filePath).LoadGrid(ctx)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, grid)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	mappingJSON, err := json.MarshalIndent(result.Mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	mappingPath := filepath.Join(outDir, "column_mapping.json")
	if err := os.WriteFile(mappingPath, mappingJSON, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mappingPath, err)
	}

	comparison := report.Build(result.HeaderRows, result.Mapping)

	csvData, err := comparison.RenderCSV()
	if err != nil {
		return fmt.Errorf("failed to render comparison CSV: %w", err)
	}
	csvPath := filepath.Join(outDir, "column_comparison.csv")
	if err := os.WriteFile(csvPath, csvData, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", csvPath, err)
	}

	mdPath := filepath.Join(outDir, "column_comparison.md")
	if err := os.WriteFile(mdPath, []byte(comparison.RenderMarkdown()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mdPath, err)
	}

	fmt.Printf("Mapped %d columns (data starts at row %d)\n", len(result.Mapping), result.DataStartRow)
	fmt.Printf("Wrote %s, %s, %s\n", mappingPath, csvPath, mdPath)
	return nil
}
