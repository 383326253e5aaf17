package models

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
)

var TicketTypes = []string{"Standard", "VIP", "Student"}

const DefaultPaymentStatus = "pending"

// Normalize checks the request and fills the default payment status.
func (r *RegistrationRequest) Normalize() error {
	if r.PersonID <= 0 || r.EventID <= 0 {
		return fmt.Errorf("%w: personId and eventId are required", apperrors.ErrBadRequest)
	}
	if !slices.Contains(TicketTypes, r.TicketType) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidTicketType, r.TicketType)
	}
	if r.PaymentStatus == "" {
		r.PaymentStatus = DefaultPaymentStatus
	}
	return nil
}

// NewRegistrationNumber returns REG-<year>-<unix millis>-<nnn>.
func NewRegistrationNumber(now time.Time) string {
	return fmt.Sprintf("REG-%d-%d-%03d", now.Year(), now.UnixMilli(), rand.IntN(1000))
}
