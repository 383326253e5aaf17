package docstore

import (
	"context"
	"fmt"

	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollParticipants = "participants"
	CollEvents       = "events"
	CollSubmissions  = "submissions"

	// Standalone collections, only written in legacy mode.
	CollJudges   = "judges"
	CollSponsors = "sponsors"
	CollVenues   = "venues"

	// Retired; workshops live inside event documents.
	CollWorkshops = "workshops"
)

// Store is the MongoDB side of the service.
type Store struct {
	db *mongo.Database
}

// Connect dials MongoDB and verifies the deployment answers a ping.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info().Str("database", database).Msg("✅ Connected to MongoDB")
	return New(client.Database(database)), nil
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}
