package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// MigrationRun records one relational → document migration attempt.
type MigrationRun struct {
	ID         uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Status     string         `gorm:"index;not null" json:"status"`
	Legacy     bool           `json:"legacy"`
	Stats      datatypes.JSON `json:"stats,omitempty"`
	ErrorMsg   string         `json:"error,omitempty"`
	StartedAt  time.Time      `gorm:"index" json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

func (MigrationRun) TableName() string { return "migration_runs" }
