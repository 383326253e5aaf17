package docstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/metrics"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *Store) findParticipant(ctx context.Context, personID int64) (*denorm.ParticipantDoc, error) {
	var p denorm.ParticipantDoc
	err := s.coll(CollParticipants).FindOne(ctx, bson.D{{Key: "_id", Value: personID}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find participant %d: %w", personID, err)
	}
	return &p, nil
}

func (s *Store) findEvent(ctx context.Context, eventID int64) (*denorm.EventDoc, error) {
	var e denorm.EventDoc
	err := s.coll(CollEvents).FindOne(ctx, bson.D{{Key: "_id", Value: eventID}}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event %d: %w", eventID, err)
	}
	return &e, nil
}

// openSeatFilter matches the event only while the person is not yet
// registered and the registrations array is below max_participants.
func openSeatFilter(eventID, personID int64) bson.D {
	return bson.D{
		{Key: "_id", Value: eventID},
		{Key: "registrations.person_id", Value: bson.D{{Key: "$ne", Value: personID}}},
		{Key: "$expr", Value: bson.D{{Key: "$lt", Value: bson.A{
			bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$registrations", bson.A{}}}}}},
			"$max_participants",
		}}}},
	}
}

// RegisterParticipant writes the registration into both the event and the
// participant document. The event side is claimed first with a conditional
// update; if the participant side fails, the event side is pulled again.
func (s *Store) RegisterParticipant(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationDetails, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	participant, err := s.findParticipant(ctx, req.PersonID)
	if err != nil {
		return nil, err
	}
	event, err := s.findEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	number := models.NewRegistrationNumber(now)

	eventSide := denorm.EventRegistration{
		PersonID:              req.PersonID,
		RegistrationNumber:    number,
		RegistrationTimestamp: now,
		PaymentStatus:         req.PaymentStatus,
		TicketType:            req.TicketType,
		Participant:           participant.Person,
	}
	res, err := s.coll(CollEvents).UpdateOne(ctx,
		openSeatFilter(req.EventID, req.PersonID),
		bson.D{{Key: "$push", Value: bson.D{{Key: "registrations", Value: eventSide}}}},
	)
	if err != nil {
		return nil, fmt.Errorf("claim seat: %w", err)
	}
	if res.MatchedCount == 0 {
		metrics.Registrations.WithLabelValues("nosql", "rejected").Inc()
		if isRegistered(event, req.PersonID) {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, apperrors.ErrEventFull
	}

	participantSide := denorm.ParticipantRegistration{
		EventID:               req.EventID,
		RegistrationNumber:    number,
		RegistrationTimestamp: now,
		PaymentStatus:         req.PaymentStatus,
		TicketType:            req.TicketType,
		EventSnapshot:         event.Snapshot(),
	}
	pres, err := s.coll(CollParticipants).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: req.PersonID}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "registrations", Value: participantSide}}}},
	)
	if err == nil && pres.MatchedCount == 0 {
		err = apperrors.ErrParticipantNotFound
	}
	if err != nil {
		bestEffort(ctx, "compensate "+number, func(ctx context.Context) error {
			_, cerr := s.coll(CollEvents).UpdateOne(ctx,
				bson.D{{Key: "_id", Value: req.EventID}},
				pullRegistration("registration_number", number),
			)
			return cerr
		})
		metrics.Registrations.WithLabelValues("nosql", "failed").Inc()
		return nil, fmt.Errorf("record participant side: %w", err)
	}

	metrics.Registrations.WithLabelValues("nosql", "created").Inc()
	logger.Info().
		Int64("person_id", req.PersonID).
		Int64("event_id", req.EventID).
		Str("registration_number", number).
		Msg("📝 NoSQL registration created")

	details := &models.RegistrationDetails{
		PersonID:              req.PersonID,
		EventID:               req.EventID,
		RegistrationNumber:    number,
		RegistrationTimestamp: now,
		PaymentStatus:         req.PaymentStatus,
		TicketType:            req.TicketType,
		EventName:             event.Name,
		StartDate:             event.StartDate,
		EndDate:               event.EndDate,
	}
	if participant.Person != nil {
		details.FirstName = participant.Person.FirstName
		details.LastName = participant.Person.LastName
		details.Email = participant.Person.Email
	}
	if event.Venue != nil {
		details.VenueName = event.Venue.Name
	}
	return details, nil
}

// CancelRegistration pulls the registration from both sides.
func (s *Store) CancelRegistration(ctx context.Context, personID, eventID int64) error {
	res, err := s.coll(CollEvents).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: eventID}, {Key: "registrations.person_id", Value: personID}},
		pullRegistration("person_id", personID),
	)
	if err != nil {
		return fmt.Errorf("cancel event side: %w", err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.ErrRegistrationNotFound
	}

	if _, err := s.coll(CollParticipants).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: personID}},
		pullRegistration("event_id", eventID),
	); err != nil {
		return fmt.Errorf("cancel participant side: %w", err)
	}

	metrics.Registrations.WithLabelValues("nosql", "cancelled").Inc()
	logger.Info().Int64("person_id", personID).Int64("event_id", eventID).Msg("🗑️ NoSQL registration cancelled")
	return nil
}

func pullRegistration(field string, value any) bson.D {
	return bson.D{{Key: "$pull", Value: bson.D{{Key: "registrations", Value: bson.D{{Key: field, Value: value}}}}}}
}

func isRegistered(e *denorm.EventDoc, personID int64) bool {
	return slices.ContainsFunc(e.Registrations, func(r denorm.EventRegistration) bool { return r.PersonID == personID })
}
