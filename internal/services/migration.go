package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/elastic"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/metrics"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"github.com/sirdesai22/hackathon-docsync/internal/source"
)

type SnapshotReader interface {
	ReadAll(ctx context.Context) (*source.Snapshot, error)
}

type DocumentWriter interface {
	Ping(ctx context.Context) error
	Replace(ctx context.Context, res *denorm.Result, legacy bool) error
	EnsureIndexes(ctx context.Context) int
}

type SearchMirror interface {
	ReindexEvents(ctx context.Context, events []denorm.EventDoc) (*elastic.ReindexResult, error)
}

type RunRecorder interface {
	Record(ctx context.Context, run *models.MigrationRun) error
}

// Migrator runs the relational → document pipeline. Writer is required;
// Mirror and Runs are optional.
type Migrator struct {
	Reader SnapshotReader
	Writer DocumentWriter
	Mirror SearchMirror
	Runs   RunRecorder
	Legacy bool

	now func() time.Time
}

func (m *Migrator) clock() time.Time {
	if m.now != nil {
		return m.now()
	}
	return time.Now().UTC()
}

// Migrate reads every relational table, transforms the rows into documents
// and replaces the document collections. Nothing is written to the document
// store unless the read and the transform both succeed.
func (m *Migrator) Migrate(ctx context.Context) (*denorm.Result, error) {
	if m.Writer == nil {
		return nil, apperrors.ErrDocStoreUnavailable
	}
	if err := m.Writer.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDocStoreUnavailable, err)
	}

	run := &models.MigrationRun{ID: uuid.New(), Legacy: m.Legacy, StartedAt: m.clock()}
	log := logger.WithField("run_id", run.ID.String())
	log.Info().Bool("legacy", m.Legacy).Msg("🚚 Migration started")

	res, err := m.migrate(ctx)
	run.FinishedAt = m.clock()

	if err != nil {
		run.Status = models.RunFailed
		run.ErrorMsg = err.Error()
		metrics.Migrations.WithLabelValues(models.RunFailed).Inc()
		log.Error().Err(err).Msg("❌ Migration failed")
	} else {
		run.Status = models.RunSucceeded
		run.Stats = statsJSON(res.Stats)
		metrics.Migrations.WithLabelValues(models.RunSucceeded).Inc()
		metrics.MigrationDuration.Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())
		for kind, n := range res.Warnings.Map() {
			if n > 0 {
				metrics.ReferentialWarnings.WithLabelValues(kind).Add(float64(n))
			}
		}
		log.Info().
			Int("participants", len(res.Participants)).
			Int("events", len(res.Events)).
			Int("submissions", len(res.Submissions)).
			Int("warnings", res.Warnings.Total()).
			Msg("✅ Migration finished")
	}

	if m.Runs != nil {
		_ = m.Runs.Record(ctx, run)
	}
	return res, err
}

func (m *Migrator) migrate(ctx context.Context) (*denorm.Result, error) {
	snap, err := m.Reader.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read relational source: %w", err)
	}

	res := denorm.Transform(snap, denorm.Options{Legacy: m.Legacy})

	if err := m.Writer.Replace(ctx, res, m.Legacy); err != nil {
		return nil, fmt.Errorf("write documents: %w", err)
	}
	m.Writer.EnsureIndexes(ctx)

	if m.Mirror != nil {
		if _, err := m.Mirror.ReindexEvents(ctx, res.Events); err != nil {
			logger.Warn().Err(err).Msg("⚠️ Search mirror reindex failed")
		}
	}
	return res, nil
}
