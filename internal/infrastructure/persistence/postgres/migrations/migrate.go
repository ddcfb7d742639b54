package migrations

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/domain/contact"
	"github.com/mzohdy/northstar/internal/domain/finance"
	"github.com/mzohdy/northstar/internal/domain/project"
	"github.com/mzohdy/northstar/internal/domain/task"
	"github.com/mzohdy/northstar/internal/infrastructure/persistence/postgres/connection"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	// Enable UUID extension for PostgreSQL
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Error("Failed to create UUID extension", zap.Error(err))
		return fmt.Errorf("failed to create UUID extension: %v", err)
	}

	models := []interface{}{
		&task.Task{},
		&project.Project{},
		&finance.Transaction{},
		&finance.Budget{},
		&contact.Contact{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			logger.Error("Migration failed", zap.Error(err), zap.String("model", fmt.Sprintf("%T", model)))
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logger.Info("Database migration completed successfully", zap.Int("models", len(models)))
	return nil
}
