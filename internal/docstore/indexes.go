package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	coll  string
	field string
	order int
}

// Indexes backing the reporting queries. They change query plans only.
var analyticsIndexes = []indexSpec{
	{CollEvents, "workshops.skill_level", 1},
	{CollEvents, "start_date", -1},
	{CollEvents, "event_type", 1},
	{CollEvents, "registrations.person_id", 1},
	{CollParticipants, "registrations.event_id", 1},
	{CollSubmissions, "team.person_id", 1},
}

// EnsureIndexes creates the reporting indexes and returns how many were
// confirmed. Failures are logged and skipped.
func (s *Store) EnsureIndexes(ctx context.Context) int {
	created := 0
	for _, ix := range analyticsIndexes {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: ix.field, Value: ix.order}},
			Options: options.Index().SetName(ix.name()),
		}
		if bestEffort(ctx, "index "+ix.coll+"."+ix.field, func(ctx context.Context) error {
			_, err := s.coll(ix.coll).Indexes().CreateOne(ctx, model)
			return err
		}) {
			created++
		}
	}
	return created
}

func (ix indexSpec) name() string {
	if ix.order < 0 {
		return "idx_" + ix.field + "_desc"
	}
	return "idx_" + ix.field
}
