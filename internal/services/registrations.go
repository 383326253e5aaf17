package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"gorm.io/gorm"
)

// RegistrationRow is a registration joined with its person and event.
type RegistrationRow struct {
	PersonID              int64     `json:"person_id" gorm:"column:person_id"`
	EventID               int64     `json:"event_id" gorm:"column:event_id"`
	RegistrationNumber    string    `json:"registration_number" gorm:"column:registration_number"`
	RegistrationTimestamp time.Time `json:"registration_timestamp" gorm:"column:registration_timestamp"`
	PaymentStatus         string    `json:"payment_status" gorm:"column:payment_status"`
	TicketType            string    `json:"ticket_type" gorm:"column:ticket_type"`
	FirstName             string    `json:"first_name" gorm:"column:first_name"`
	LastName              string    `json:"last_name" gorm:"column:last_name"`
	Email                 string    `json:"email" gorm:"column:email"`
	EventName             string    `json:"event_name" gorm:"column:event_name"`
	StartDate             time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate               time.Time `json:"end_date" gorm:"column:end_date"`
	EventType             string    `json:"event_type" gorm:"column:event_type"`
}

// ListRegistrations returns every registration, most recent first.
// Registrations whose person or event row is missing are left out.
func (s *SQL) ListRegistrations(ctx context.Context) ([]RegistrationRow, error) {
	rows := []RegistrationRow{}
	err := s.DB.WithContext(ctx).
		Table(s.table("Registration", "r")).
		Select(`r.person_id, r.event_id, r.registration_number, r.registration_timestamp, r.payment_status, r.ticket_type,
			p.first_name, p.last_name, p.email, e.name AS event_name, e.start_date, e.end_date, e.event_type`).
		Joins("JOIN " + s.table("Person", "p") + " ON p.person_id = r.person_id").
		Joins("JOIN " + s.table("HackathonEvent", "e") + " ON e.event_id = r.event_id").
		Order("r.registration_timestamp DESC, r.registration_number").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return rows, nil
}

// AvailableParticipants lists participants not yet registered for the event.
func (s *SQL) AvailableParticipants(ctx context.Context, eventID int64) ([]ParticipantOption, error) {
	var event models.HackathonEvent
	if err := s.DB.WithContext(ctx).First(&event, "event_id = ?", eventID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrEventNotFound)
	}

	registered := s.DB.WithContext(ctx).Model(&models.Registration{}).Select("person_id").Where("event_id = ?", eventID)
	return s.participantOptions(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("pt.person_id NOT IN (?)", registered)
	})
}
