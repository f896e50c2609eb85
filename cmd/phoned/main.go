package main

import (
	"log"

	"focusband/companion/internal/config"
	"focusband/companion/internal/db"
	"focusband/companion/internal/handler"
	"focusband/companion/internal/repository"
	"focusband/companion/internal/router"
	"focusband/companion/internal/service"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	deviceRepo := repository.NewDeviceRepository(database)
	logRepo := repository.NewDailyLogRepository(database)

	pairingService := service.NewPairingService(deviceRepo, cfg.JWTSecret, cfg.TokenTTL)
	summaryService := service.NewSummaryService(logRepo, nil, cfg.RetentionDays)

	deviceHandler := handler.NewDeviceHandler(pairingService)
	summaryHandler := handler.NewSummaryHandler(summaryService)

	engine := router.New(pairingService, deviceHandler, summaryHandler, cfg.CORSOrigins)
	log.Printf("companion listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
