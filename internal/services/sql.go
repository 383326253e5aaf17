package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/metrics"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL implements the use cases against the relational store.
type SQL struct {
	DB *gorm.DB

	now func() time.Time
}

func NewSQL(db *gorm.DB) *SQL { return &SQL{DB: db} }

func (s *SQL) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// table quotes a table name for the active dialect.
func (s *SQL) table(name, alias string) string {
	return s.DB.Statement.Quote(name) + " " + alias
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func hasCapacity(current int64, maxParticipants int) bool {
	return current < int64(maxParticipants)
}

// lockEvent loads the event row with FOR UPDATE so concurrent registrations
// for the same event serialize on it. sqlite ignores the clause; its writes
// are serialized by the database lock.
func lockEvent(tx *gorm.DB, eventID int64, dst *models.HackathonEvent) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dst, "event_id = ?", eventID)
}

// RegisterParticipant runs every check and the insert in one transaction.
func (s *SQL) RegisterParticipant(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationDetails, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	var (
		reg    models.Registration
		person models.Person
		event  models.HackathonEvent
		venue  models.Venue
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Participant
		if err := tx.First(&p, "person_id = ?", req.PersonID).Error; err != nil {
			return notFound(err, apperrors.ErrParticipantNotFound)
		}
		if err := lockEvent(tx, req.EventID, &event).Error; err != nil {
			return notFound(err, apperrors.ErrEventNotFound)
		}

		var existing int64
		if err := tx.Model(&models.Registration{}).
			Where("person_id = ? AND event_id = ?", req.PersonID, req.EventID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.ErrAlreadyRegistered
		}

		var current int64
		if err := tx.Model(&models.Registration{}).Where("event_id = ?", req.EventID).Count(&current).Error; err != nil {
			return err
		}
		if !hasCapacity(current, event.MaxParticipants) {
			return apperrors.ErrEventFull
		}

		now := s.clock()
		reg = models.Registration{
			PersonID:              req.PersonID,
			EventID:               req.EventID,
			RegistrationNumber:    models.NewRegistrationNumber(now),
			RegistrationTimestamp: now,
			PaymentStatus:         req.PaymentStatus,
			TicketType:            req.TicketType,
		}
		if err := tx.Create(&reg).Error; err != nil {
			return err
		}

		if err := tx.First(&person, "person_id = ?", req.PersonID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.First(&venue, "venue_id = ?", event.VenueID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		outcome := "failed"
		if apperrors.IsConflict(err) || apperrors.IsNotFound(err) {
			outcome = "rejected"
		}
		metrics.Registrations.WithLabelValues("sql", outcome).Inc()
		return nil, err
	}

	metrics.Registrations.WithLabelValues("sql", "created").Inc()
	logger.Info().
		Int64("person_id", reg.PersonID).
		Int64("event_id", reg.EventID).
		Str("registration_number", reg.RegistrationNumber).
		Msg("📝 SQL registration created")

	return &models.RegistrationDetails{
		PersonID:              reg.PersonID,
		EventID:               reg.EventID,
		RegistrationNumber:    reg.RegistrationNumber,
		RegistrationTimestamp: reg.RegistrationTimestamp,
		PaymentStatus:         reg.PaymentStatus,
		TicketType:            reg.TicketType,
		FirstName:             person.FirstName,
		LastName:              person.LastName,
		Email:                 person.Email,
		EventName:             event.Name,
		StartDate:             event.StartDate,
		EndDate:               event.EndDate,
		VenueName:             venue.Name,
	}, nil
}

func (s *SQL) CancelRegistration(ctx context.Context, personID, eventID int64) error {
	res := s.DB.WithContext(ctx).
		Where("person_id = ? AND event_id = ?", personID, eventID).
		Delete(&models.Registration{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRegistrationNotFound
	}
	metrics.Registrations.WithLabelValues("sql", "cancelled").Inc()
	logger.Info().Int64("person_id", personID).Int64("event_id", eventID).Msg("🗑️ SQL registration cancelled")
	return nil
}

// CreateSubmission inserts the submission and one Creates row per team
// member. Every member must be a participant.
func (s *SQL) CreateSubmission(ctx context.Context, req models.SubmissionRequest) (*models.Submission, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	sub := models.Submission{
		ProjectName:     req.ProjectName,
		Description:     req.Description,
		SubmissionTime:  s.clock(),
		TechnologyStack: req.TechnologyStack,
		RepositoryURL:   req.RepositoryURL,
		EventID:         req.EventID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.EventID != nil {
			var e models.HackathonEvent
			if err := tx.First(&e, "event_id = ?", *req.EventID).Error; err != nil {
				return notFound(err, apperrors.ErrEventNotFound)
			}
		}

		var found int64
		if err := tx.Model(&models.Participant{}).Where("person_id IN ?", req.TeamMemberIDs).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(req.TeamMemberIDs)) {
			return apperrors.ErrParticipantNotFound
		}

		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		links := make([]models.Creates, 0, len(req.TeamMemberIDs))
		for _, id := range req.TeamMemberIDs {
			links = append(links, models.Creates{PersonID: id, SubmissionID: sub.SubmissionID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("submission_id", sub.SubmissionID).Int("team", len(req.TeamMemberIDs)).Msg("📤 Submission created")
	return &sub, nil
}

// Report is the relational analytics report. Ordering matches the document
// side: newest start date first, then most registrations.
func (s *SQL) Report(ctx context.Context, eventType string) ([]models.EventReport, error) {
	q := s.DB.WithContext(ctx).
		Table(s.table("HackathonEvent", "he")).
		Select(`he.event_id, he.name AS event_name, he.event_type, he.start_date, he.end_date, he.max_participants,
			COALESCE(v.name, '') AS venue_name, COALESCE(v.address, '') AS venue_address, COALESCE(v.capacity, 0) AS venue_capacity,
			COUNT(r.registration_number) AS total_registrations,
			SUM(CASE WHEN r.payment_status = 'completed' THEN 1 ELSE 0 END) AS paid_registrations,
			SUM(CASE WHEN r.payment_status = 'pending' THEN 1 ELSE 0 END) AS pending_payments,
			SUM(CASE WHEN r.ticket_type = 'Standard' THEN 1 ELSE 0 END) AS standard_tickets,
			SUM(CASE WHEN r.ticket_type = 'VIP' THEN 1 ELSE 0 END) AS vip_tickets,
			SUM(CASE WHEN r.ticket_type = 'Student' THEN 1 ELSE 0 END) AS student_tickets`).
		Joins("LEFT JOIN " + s.table("Venue", "v") + " ON v.venue_id = he.venue_id").
		Joins("LEFT JOIN " + s.table("Registration", "r") + " ON r.event_id = he.event_id")
	if eventType != "" {
		q = q.Where("he.event_type = ?", eventType)
	}
	rows := []models.EventReport{}
	err := q.Group("he.event_id, he.name, he.event_type, he.start_date, he.end_date, he.max_participants, v.name, v.address, v.capacity").
		Order("he.start_date DESC, total_registrations DESC, he.event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	names, err := s.registeredParticipants(ctx, eventType)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].CapacityPercentage = models.CapacityPercentage(rows[i].TotalRegistrations, rows[i].MaxParticipants)
		rows[i].RegisteredParticipants = names[rows[i].EventID]
	}
	return rows, nil
}

// registeredParticipants renders "First Last (Ticket); ..." per event in
// registration order.
func (s *SQL) registeredParticipants(ctx context.Context, eventType string) (map[int64]string, error) {
	var regs []struct {
		EventID    int64
		FirstName  *string
		LastName   *string
		TicketType string
	}
	q := s.DB.WithContext(ctx).
		Table(s.table("Registration", "r")).
		Select("r.event_id, p.first_name, p.last_name, r.ticket_type").
		Joins("LEFT JOIN " + s.table("Person", "p") + " ON p.person_id = r.person_id")
	if eventType != "" {
		q = q.Joins("JOIN "+s.table("HackathonEvent", "he")+" ON he.event_id = r.event_id").Where("he.event_type = ?", eventType)
	}
	if err := q.Order("r.event_id, r.registration_timestamp, r.registration_number").Scan(&regs).Error; err != nil {
		return nil, fmt.Errorf("registered participants: %w", err)
	}

	parts := map[int64][]string{}
	for _, r := range regs {
		name := "Unknown"
		if r.FirstName != nil && r.LastName != nil {
			name = *r.FirstName + " " + *r.LastName
		}
		parts[r.EventID] = append(parts[r.EventID], fmt.Sprintf("%s (%s)", name, r.TicketType))
	}
	out := make(map[int64]string, len(parts))
	for id, p := range parts {
		out[id] = strings.Join(p, "; ")
	}
	return out, nil
}

// EventRow is one line of the relational event listing.
type EventRow struct {
	EventID              int64     `json:"event_id" gorm:"column:event_id"`
	Name                 string    `json:"name" gorm:"column:name"`
	StartDate            time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate              time.Time `json:"end_date" gorm:"column:end_date"`
	EventType            string    `json:"event_type" gorm:"column:event_type"`
	MaxParticipants      int       `json:"max_participants" gorm:"column:max_participants"`
	VenueName            string    `json:"venue_name" gorm:"column:venue_name"`
	VenueAddress         string    `json:"venue_address" gorm:"column:venue_address"`
	CurrentRegistrations int       `json:"current_registrations" gorm:"column:current_registrations"`
	CapacityPercentage   float64   `json:"capacity_percentage" gorm:"-"`
}

func (s *SQL) ListEvents(ctx context.Context) ([]EventRow, error) {
	rows := []EventRow{}
	err := s.DB.WithContext(ctx).
		Table(s.table("HackathonEvent", "e")).
		Select(`e.event_id, e.name, e.start_date, e.end_date, e.event_type, e.max_participants,
			COALESCE(v.name, '') AS venue_name, COALESCE(v.address, '') AS venue_address,
			COUNT(r.person_id) AS current_registrations`).
		Joins("LEFT JOIN " + s.table("Venue", "v") + " ON v.venue_id = e.venue_id").
		Joins("LEFT JOIN " + s.table("Registration", "r") + " ON r.event_id = e.event_id").
		Group("e.event_id, e.name, e.start_date, e.end_date, e.event_type, e.max_participants, v.name, v.address").
		Order("e.start_date ASC, e.event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for i := range rows {
		rows[i].CapacityPercentage = models.CapacityPercentage(rows[i].CurrentRegistrations, rows[i].MaxParticipants)
	}
	return rows, nil
}

// ParticipantRow is one line of the relational participant listing.
type ParticipantRow struct {
	PersonID         int64     `json:"person_id" gorm:"column:person_id"`
	FirstName        string    `json:"first_name" gorm:"column:first_name"`
	LastName         string    `json:"last_name" gorm:"column:last_name"`
	Email            string    `json:"email" gorm:"column:email"`
	RegistrationDate time.Time `json:"registration_date" gorm:"column:registration_date"`
	TShirtSize       string    `json:"t_shirt_size" gorm:"column:t_shirt_size"`
	EventsRegistered int       `json:"events_registered" gorm:"column:events_registered"`
}

func (s *SQL) ListParticipants(ctx context.Context) ([]ParticipantRow, error) {
	rows := []ParticipantRow{}
	err := s.DB.WithContext(ctx).
		Table(s.table("Participant", "pt")).
		Select(`p.person_id, p.first_name, p.last_name, p.email, pt.registration_date, pt.t_shirt_size,
			COUNT(r.event_id) AS events_registered`).
		Joins("JOIN " + s.table("Person", "p") + " ON p.person_id = pt.person_id").
		Joins("LEFT JOIN " + s.table("Registration", "r") + " ON r.person_id = pt.person_id").
		Group("p.person_id, p.first_name, p.last_name, p.email, pt.registration_date, pt.t_shirt_size").
		Order("p.last_name, p.first_name, p.person_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return rows, nil
}

var statsTables = []struct {
	entity string
	model  any
}{
	{"Persons", &models.Person{}},
	{"Participants", &models.Participant{}},
	{"Judges", &models.Judge{}},
	{"Venues", &models.Venue{}},
	{"Events", &models.HackathonEvent{}},
	{"Sponsors", &models.Sponsor{}},
	{"Workshops", &models.Workshop{}},
	{"Submissions", &models.Submission{}},
	{"Registrations", &models.Registration{}},
	{"Supports", &models.Supports{}},
	{"Creates", &models.Creates{}},
	{"Evaluates", &models.Evaluates{}},
}

// Stats counts rows per relational table.
func (s *SQL) Stats(ctx context.Context) ([]models.EntityCount, error) {
	out := make([]models.EntityCount, 0, len(statsTables))
	for _, t := range statsTables {
		var n int64
		if err := s.DB.WithContext(ctx).Model(t.model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", t.entity, err)
		}
		out = append(out, models.EntityCount{Entity: t.entity, Count: n})
	}
	return out, nil
}
