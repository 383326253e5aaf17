package db

import (
	"fmt"

	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info().Msg("✅ relational schema migrated")
	return nil
}
