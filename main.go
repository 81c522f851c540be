package main

import (
	"log"
	"time"

	"gowrangle/adapters/llm"
	"gowrangle/adapters/memory"
	"gowrangle/adapters/postgres"
	"gowrangle/app"
	"gowrangle/domain/header"
	"gowrangle/internal/config"
	"gowrangle/internal/errors"
	"gowrangle/ports"
	"gowrangle/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and ensures the schema exists
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if _, err := db.Exec(postgres.Schema); err != nil {
		return nil, errors.Wrap(err, "failed to apply schema")
	}

	return db, nil
}

// buildAbbreviator wires the OpenAI-backed abbreviator, or the mock
// when no API key is configured
func buildAbbreviator(appConfig *config.Config) ports.AbbreviatorPort {
	llmConfig := llm.Config{
		Model:       appConfig.AI.OpenAIModel,
		APIKey:      appConfig.AI.OpenAIKey,
		BaseURL:     appConfig.AI.BaseURL,
		Temperature: appConfig.AI.Temperature,
		MaxTokens:   appConfig.AI.MaxTokens,
		Timeout:     time.Duration(appConfig.AI.TimeoutMS) * time.Millisecond,
	}

	if appConfig.AI.OpenAIKey == "" {
		log.Println("OPENAI_API_KEY not set, using mock abbreviator")
		return llm.NewAbbreviatorWithClient(llmConfig, &llm.MockLLMClient{})
	}

	abbreviator, err := llm.NewAbbreviator(llmConfig)
	if err != nil {
		log.Fatalf("Failed to create abbreviator: %v", err)
	}
	return abbreviator
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Pick the mapping store: PostgreSQL when configured, in-memory otherwise
	var repo ports.MappingRepository
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewMappingRepository(db)
		log.Println("Using PostgreSQL mapping store")
	} else {
		repo = memory.NewMappingRepository()
		log.Println("DATABASE_URL not set, mappings are kept in memory")
	}

	pipelineConfig := app.PipelineConfig{
		BatchSize:            appConfig.Pipeline.BatchSize,
		MaxConcurrentBatches: int64(appConfig.Pipeline.MaxConcurrentBatches),
		ForcedDataStart:      -1,
		Detector: header.DetectorConfig{
			NumericRatio: appConfig.Pipeline.NumericRatio,
			EmptyRatio:   appConfig.Pipeline.EmptyRatio,
		},
	}

	pipeline := app.NewPipelineService(buildAbbreviator(appConfig), pipelineConfig)
	wrangler := app.NewWranglerService(pipeline, repo)

	appUI := ui.NewApp(wrangler)
	if err := appUI.Start(ui.Config{Port: appConfig.Server.Port}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
