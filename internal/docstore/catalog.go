package docstore

import (
	"context"
	"fmt"

	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) ListEvents(ctx context.Context) ([]denorm.EventDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll(CollEvents).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	out := []denorm.EventDoc{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return out, nil
}

func (s *Store) ListParticipants(ctx context.Context) ([]denorm.ParticipantDoc, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "person.last_name", Value: 1},
		{Key: "person.first_name", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.coll(CollParticipants).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find participants: %w", err)
	}
	out := []denorm.ParticipantDoc{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode participants: %w", err)
	}
	return out, nil
}

// Stats holds document counts and the number of workshops embedded in
// event documents.
type Stats struct {
	Collections       []models.EntityCount `json:"collections"`
	EmbeddedWorkshops int64                `json:"workshops_embedded"`
}

var statsCollections = []struct{ entity, coll string }{
	{"Participants", CollParticipants},
	{"Events", CollEvents},
	{"Submissions", CollSubmissions},
	{"Judges", CollJudges},
	{"Sponsors", CollSponsors},
	{"Venues", CollVenues},
}

// Stats counts live documents on every call.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	out := &Stats{}
	for _, c := range statsCollections {
		n, err := s.coll(c.coll).CountDocuments(ctx, bson.D{})
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.coll, err)
		}
		out.Collections = append(out.Collections, models.EntityCount{Entity: c.entity, Count: n})
	}

	n, err := s.embeddedWorkshops(ctx)
	if err != nil {
		return nil, err
	}
	out.EmbeddedWorkshops = n
	return out, nil
}

func (s *Store) embeddedWorkshops(ctx context.Context) (int64, error) {
	pipeline := []bson.D{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{"$workshops", bson.A{}}},
			}}}}}},
		}}},
	}
	cur, err := s.coll(CollEvents).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate workshops total: %w", err)
	}
	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode workshops total: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
