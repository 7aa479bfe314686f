// Package routes defines the API routing configuration.
package routes

import (
	"vaultguard/internal/config"
	"vaultguard/internal/handlers"
	"vaultguard/internal/middleware"
	"vaultguard/internal/repositories"
	"vaultguard/internal/services/executor"
	"vaultguard/internal/services/ledger"
	"vaultguard/internal/services/nonce"
	"vaultguard/internal/services/oracle"
	"vaultguard/internal/services/signature"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	moduleRepo := repositories.NewModuleRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	cache := repositories.NewRedisCache(repositories.Redis)

	priceSource := oracle.NewRedisPriceSource(repositories.Redis)
	adapter := oracle.NewAdapter(priceSource)
	limitLedger := ledger.New(adapter, config.GetEnv("STABLE_ASSET", ""))
	sequencer := nonce.NewSequencer(moduleRepo)

	moduleService := executor.NewService(
		moduleRepo,
		walletRepo,
		cache,
		signature.NewVerifier(),
		sequencer,
		limitLedger,
		nil, // default gas meter
		nil, // no-op metrics
	)
	moduleHandler := handlers.NewModuleHandler(moduleService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	module := api.Group("/module/:wallet")
	module.Post("/setup", moduleHandler.Setup)
	module.Post("/execute", middleware.RelayerAuth, moduleHandler.Execute)
	module.Post("/delegate", moduleHandler.SetDelegate)
	module.Get("/nonce", moduleHandler.Nonce)
	module.Get("/limits/:asset", moduleHandler.Limit)
	module.Get("/spent", moduleHandler.GlobalSpend)
	module.Get("/delegate", moduleHandler.Delegate)
	module.Get("/transfers/:reference", moduleHandler.TransferLog)
}
