// File: cmd/server/providers.go
package main

import (
	"log"

	"carmarket_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideCleanup builds the teardown function the injector returns alongside
// the server.
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
