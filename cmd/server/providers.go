// File: cmd/server/providers.go
package main

import (
	"log"

	"company_portal_backend/internal/address"
	"company_portal_backend/internal/config"
	"company_portal_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideAddressStore(cfg *config.Config) *address.Store {
	return address.NewStore(cfg.AddressSessionTTL)
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
