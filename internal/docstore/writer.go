package docstore

import (
	"context"
	"fmt"

	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type batch struct {
	coll string
	docs []any
}

func docs[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}

// Replace clears every target collection and inserts the freshly built
// documents. Superseded collections are dropped, not emptied.
func (s *Store) Replace(ctx context.Context, res *denorm.Result, legacy bool) error {
	batches := []batch{
		{CollParticipants, docs(res.Participants)},
		{CollEvents, docs(res.Events)},
		{CollSubmissions, docs(res.Submissions)},
	}
	drops := []string{CollWorkshops}
	if legacy {
		batches = append(batches,
			batch{CollJudges, docs(res.Judges)},
			batch{CollSponsors, docs(res.Sponsors)},
			batch{CollVenues, docs(res.Venues)},
		)
	} else {
		drops = append([]string{CollJudges, CollSponsors, CollVenues}, drops...)
	}

	for _, b := range batches {
		if err := s.replaceCollection(ctx, b); err != nil {
			return err
		}
	}

	for _, name := range drops {
		bestEffort(ctx, "drop "+name, func(ctx context.Context) error {
			return s.coll(name).Drop(ctx)
		})
	}
	return nil
}

func (s *Store) replaceCollection(ctx context.Context, b batch) error {
	c := s.coll(b.coll)
	del, err := c.DeleteMany(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("clear %s: %w", b.coll, err)
	}
	if len(b.docs) == 0 {
		logger.Debug().Str("collection", b.coll).Int64("deleted", del.DeletedCount).Msg("cleared, nothing to insert")
		return nil
	}

	ins, err := c.InsertMany(ctx, b.docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("insert %s: %w", b.coll, err)
	}
	metrics.DocumentsWritten.WithLabelValues(b.coll).Add(float64(len(ins.InsertedIDs)))
	logger.Info().
		Str("collection", b.coll).
		Int64("deleted", del.DeletedCount).
		Int("inserted", len(ins.InsertedIDs)).
		Msg("📦 Collection replaced")
	return nil
}
