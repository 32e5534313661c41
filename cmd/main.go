package main

import (
	"log"

	"backend/config"
	"backend/routes"
	"backend/services"
	"backend/storage"
)

func main() {
	if err := config.InitDB(); err != nil {
		log.Fatalf("init database: %v", err)
	}

	store, err := storage.NewGormStore(config.DB)
	if err != nil {
		log.Fatalf("init blob store: %v", err)
	}

	ledger, err := services.NewLedgerService(store)
	if err != nil {
		log.Fatalf("load ledger: %v", err)
	}
	profile, err := services.NewProfileService(store)
	if err != nil {
		log.Fatalf("load profile: %v", err)
	}

	r := routes.SetupRouter(ledger, profile)
	if err := r.Run(":" + config.Getenv("PORT", "8080")); err != nil {
		log.Fatal(err)
	}
}
