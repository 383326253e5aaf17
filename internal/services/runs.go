package services

import (
	"context"
	"encoding/json"

	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RunLedger persists one row per migration attempt in the relational store.
type RunLedger struct {
	DB *gorm.DB
}

func NewRunLedger(db *gorm.DB) *RunLedger { return &RunLedger{DB: db} }

func (l *RunLedger) Record(ctx context.Context, run *models.MigrationRun) error {
	if err := l.DB.WithContext(ctx).Create(run).Error; err != nil {
		logger.Error().Err(err).Str("run_id", run.ID.String()).Msg("❌ Failed to record migration run")
		return err
	}
	return nil
}

// List returns the most recent runs first.
func (l *RunLedger) List(ctx context.Context, limit int) ([]models.MigrationRun, error) {
	runs := []models.MigrationRun{}
	err := l.DB.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}

func statsJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
