package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"bvcfolio/api"
	"bvcfolio/internal"
	"bvcfolio/internal/domain"
	"bvcfolio/internal/repository"
	"bvcfolio/internal/service"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

// InitializeDependencies wires the store, market data providers and
// services into a ready ApiHandler. With no db secrets configured the
// embedded sqlite store is used.
func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	var dbConn *sql.DB
	var holdingRepository repository.HoldingRepository
	if secrets.UsePostgres() {
		dbConn, err = sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		holdingRepository = repository.NewHoldingRepository(dbConn)
	} else {
		holdingRepository, dbConn, err = repository.NewSqliteHoldingRepository(secrets.SqlitePath)
		if err != nil {
			return nil, err
		}
	}

	quoteRepository := repository.NewQuoteRepository()
	fxRepository := repository.NewFxRateRepository()

	portfolioService := service.NewPortfolioService(holdingRepository, quoteRepository, fxRepository)
	marketService := service.NewMarketService(quoteRepository, domain.DefaultUniverse)
	purchaseService := service.NewPurchaseService(quoteRepository)

	apiHandler := &api.ApiHandler{
		Db:               dbConn,
		PortfolioService: portfolioService,
		MarketService:    marketService,
		PurchaseService:  purchaseService,
		FxRepository:     fxRepository,
	}

	return apiHandler, nil
}
