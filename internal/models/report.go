package models

import "time"

// EventReport is one row of the registration analytics report. Both stores
// produce the same shape.
type EventReport struct {
	EventID                int64     `json:"event_id" bson:"event_id" gorm:"column:event_id"`
	EventName              string    `json:"event_name" bson:"event_name" gorm:"column:event_name"`
	EventType              string    `json:"event_type" bson:"event_type" gorm:"column:event_type"`
	StartDate              time.Time `json:"start_date" bson:"start_date" gorm:"column:start_date"`
	EndDate                time.Time `json:"end_date" bson:"end_date" gorm:"column:end_date"`
	MaxParticipants        int       `json:"max_participants" bson:"max_participants" gorm:"column:max_participants"`
	VenueName              string    `json:"venue_name" bson:"venue_name" gorm:"column:venue_name"`
	VenueAddress           string    `json:"venue_address" bson:"venue_address" gorm:"column:venue_address"`
	VenueCapacity          int       `json:"venue_capacity" bson:"venue_capacity" gorm:"column:venue_capacity"`
	TotalRegistrations     int       `json:"total_registrations" bson:"total_registrations" gorm:"column:total_registrations"`
	CapacityPercentage     float64   `json:"capacity_percentage" bson:"capacity_percentage" gorm:"column:capacity_percentage"`
	PaidRegistrations      int       `json:"paid_registrations" bson:"paid_registrations" gorm:"column:paid_registrations"`
	PendingPayments        int       `json:"pending_payments" bson:"pending_payments" gorm:"column:pending_payments"`
	StandardTickets        int       `json:"standard_tickets" bson:"standard_tickets" gorm:"column:standard_tickets"`
	VIPTickets             int       `json:"vip_tickets" bson:"vip_tickets" gorm:"column:vip_tickets"`
	StudentTickets         int       `json:"student_tickets" bson:"student_tickets" gorm:"column:student_tickets"`
	RegisteredParticipants string    `json:"registered_participants" bson:"registered_participants" gorm:"-"`
}

// CapacityPercentage rounds registrations/max to two decimals.
func CapacityPercentage(registrations, maxParticipants int) float64 {
	if maxParticipants <= 0 {
		return 0
	}
	pct := float64(registrations) / float64(maxParticipants) * 100
	return float64(int64(pct*100+0.5)) / 100
}

// EntityCount is one line of a store statistics listing.
type EntityCount struct {
	Entity string `json:"entity" bson:"entity"`
	Count  int64  `json:"count" bson:"count"`
}

// RegistrationRequest is the register-participant use case input, shared by
// both stores.
type RegistrationRequest struct {
	PersonID      int64  `json:"personId"`
	EventID       int64  `json:"eventId"`
	TicketType    string `json:"ticketType"`
	PaymentStatus string `json:"paymentStatus"`
}

// RegistrationDetails is returned after a successful registration.
type RegistrationDetails struct {
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
	VenueName             string    `json:"venue_name" gorm:"column:venue_name"`
}
