package apperrors

import "errors"

var (
	// ErrDocStoreUnavailable means the document store could not be reached.
	ErrDocStoreUnavailable = errors.New("document store not connected")

	ErrParticipantNotFound  = errors.New("participant not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrAlreadyRegistered    = errors.New("participant is already registered for this event")
	ErrEventFull            = errors.New("event is at full capacity")

	ErrInvalidTicketType = errors.New("invalid ticket type")
	ErrBadRequest        = errors.New("bad request")

	// ErrSearchDisabled is returned when no search mirror is configured.
	ErrSearchDisabled = errors.New("search mirror not configured")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrRegistrationNotFound) ||
		errors.Is(err, ErrSubmissionNotFound)
}

// IsConflict reports whether err is a registration conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyRegistered) || errors.Is(err, ErrEventFull)
}
