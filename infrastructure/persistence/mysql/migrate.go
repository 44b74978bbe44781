package mysql

import (
	"fmt"

	"petcare/infrastructure/persistence/mysql/po"
	"petcare/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	models := po.All()
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("Database schema migrated", zap.Int("tables", len(models)))
	return nil
}
