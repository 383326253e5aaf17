package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

func countWhere(field, value string) bson.D {
	return bson.D{{Key: "$size", Value: bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: "$registrations"},
		{Key: "as", Value: "reg"},
		{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$reg." + field, value}}}},
	}}}}}
}

// participantList renders "First Last (Ticket); ..." in registration order.
var participantList = bson.D{{Key: "$reduce", Value: bson.D{
	{Key: "input", Value: "$registrations"},
	{Key: "initialValue", Value: ""},
	{Key: "in", Value: bson.D{{Key: "$concat", Value: bson.A{
		"$$value",
		bson.D{{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{"$$value", ""}}}, "", "; "}}},
		bson.D{{Key: "$ifNull", Value: bson.A{
			bson.D{{Key: "$concat", Value: bson.A{"$$this.participant.first_name", " ", "$$this.participant.last_name"}}},
			"Unknown",
		}}},
		" (",
		"$$this.ticket_type",
		")",
	}}}},
}}}

func reportPipeline(eventType string) []bson.D {
	var pipeline []bson.D
	if eventType != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "event_type", Value: eventType}}}})
	}
	return append(pipeline,
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "registrations", Value: bson.D{{Key: "$sortArray", Value: bson.D{
				{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$registrations", bson.A{}}}}},
				{Key: "sortBy", Value: bson.D{{Key: "registration_timestamp", Value: 1}, {Key: "registration_number", Value: 1}}},
			}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "event_id", Value: "$_id"},
			{Key: "event_name", Value: "$name"},
			{Key: "event_type", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "end_date", Value: 1},
			{Key: "max_participants", Value: 1},
			{Key: "venue_name", Value: "$venue.name"},
			{Key: "venue_address", Value: "$venue.address"},
			{Key: "venue_capacity", Value: "$venue.capacity"},
			{Key: "total_registrations", Value: bson.D{{Key: "$size", Value: "$registrations"}}},
			{Key: "paid_registrations", Value: countWhere("payment_status", "completed")},
			{Key: "pending_payments", Value: countWhere("payment_status", "pending")},
			{Key: "standard_tickets", Value: countWhere("ticket_type", "Standard")},
			{Key: "vip_tickets", Value: countWhere("ticket_type", "VIP")},
			{Key: "student_tickets", Value: countWhere("ticket_type", "Student")},
			{Key: "registered_participants", Value: participantList},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "start_date", Value: -1},
			{Key: "total_registrations", Value: -1},
			{Key: "event_id", Value: 1},
		}}},
	)
}

// Report is the registration analytics report, optionally narrowed to one
// event type.
func (s *Store) Report(ctx context.Context, eventType string) ([]models.EventReport, error) {
	cur, err := s.coll(CollEvents).Aggregate(ctx, reportPipeline(eventType))
	if err != nil {
		return nil, fmt.Errorf("aggregate report: %w", err)
	}
	rows := []models.EventReport{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	for i := range rows {
		rows[i].CapacityPercentage = models.CapacityPercentage(rows[i].TotalRegistrations, rows[i].MaxParticipants)
	}
	return rows, nil
}

// WorkshopRow is one workshop with the event it belongs to.
type WorkshopRow struct {
	EventID   int64              `bson:"event_id" json:"event_id"`
	EventName string             `bson:"event_name" json:"event_name"`
	EventType string             `bson:"event_type" json:"event_type"`
	StartDate time.Time          `bson:"start_date" json:"start_date"`
	VenueName string             `bson:"venue_name" json:"venue_name"`
	Workshop  denorm.WorkshopDoc `bson:"workshop" json:"workshop"`
}

func workshopPipeline(skillLevel string) []bson.D {
	var pipeline []bson.D
	match := bson.D{{Key: "$match", Value: bson.D{{Key: "workshops.skill_level", Value: skillLevel}}}}
	if skillLevel != "" {
		pipeline = append(pipeline, match)
	}
	pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: "$workshops"}})
	if skillLevel != "" {
		pipeline = append(pipeline, match)
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "start_date", Value: 1},
			{Key: "_id", Value: 1},
			{Key: "workshops.workshop_number", Value: 1},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "event_id", Value: "$_id"},
			{Key: "event_name", Value: "$name"},
			{Key: "event_type", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "venue_name", Value: "$venue.name"},
			{Key: "workshop", Value: "$workshops"},
		}}},
	)
}

// Workshops unwinds the embedded workshops, optionally filtered by skill
// level, ordered by event start date.
func (s *Store) Workshops(ctx context.Context, skillLevel string) ([]WorkshopRow, error) {
	cur, err := s.coll(CollEvents).Aggregate(ctx, workshopPipeline(skillLevel))
	if err != nil {
		return nil, fmt.Errorf("aggregate workshops: %w", err)
	}
	rows := []WorkshopRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode workshops: %w", err)
	}
	return rows, nil
}
