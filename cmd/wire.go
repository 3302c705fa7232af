package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"rminsights/api"
	"rminsights/internal/app"
	"rminsights/internal/config"
	"rminsights/internal/logger"
	"rminsights/internal/repository"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	// .env is optional; secrets.json is the source of truth.
	_ = godotenv.Load()

	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	l := logger.New()

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	// Resolve the environment's actual tables/columns once; fetchers never
	// probe per request.
	schemaMap, err := repository.NewSchemaRepository(dbConn).Resolve(repository.DefaultTableSpecs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source schema: %w", err)
	}

	narrativeRepository, err := newNarrativeRepository(secrets)
	if err != nil {
		return nil, err
	}

	insightsHandler := app.ClientInsightsHandler{
		ClientRepository:           repository.NewClientRepository(dbConn, schemaMap),
		HoldingsRepository:         repository.NewHoldingsRepository(dbConn, schemaMap),
		CasaRepository:             repository.NewCasaRepository(dbConn, schemaMap),
		TargetAllocationRepository: repository.NewTargetAllocationRepository(dbConn, schemaMap),
		ProductCatalog:             repository.NewProductCatalogRepository(secrets.CatalogPath, l),
		NarrativeRepository:        narrativeRepository,
		Log:                        l,
	}

	return &api.ApiHandler{
		Db:                    dbConn,
		ClientInsightsHandler: insightsHandler,
		BatchHandler: app.BatchHandler{
			Insights: insightsHandler,
			Log:      l,
		},
		MarketDataRepository: repository.NewMarketDataRepository(),
		RequestLogRepository: repository.NewRequestLogRepository(),
		JwtSecret:            secrets.JwtSecret,
	}, nil
}

func newNarrativeRepository(secrets *config.Secrets) (repository.NarrativeRepository, error) {
	switch secrets.LLMProvider {
	case "claude":
		if secrets.AnthropicApiKey == "" {
			return nil, nil
		}
		return repository.NewClaudeNarrativeRepository(secrets.AnthropicApiKey), nil
	default:
		if secrets.OpenAIApiKey == "" {
			return nil, nil
		}
		return repository.NewGptNarrativeRepository(secrets.OpenAIApiKey)
	}
}
