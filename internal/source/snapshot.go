package source

import (
	"errors"
	"fmt"

	"github.com/sirdesai22/hackathon-docsync/internal/models"
)

// Snapshot holds the twelve relational row sets read in one migration.
type Snapshot struct {
	People        []models.Person
	Participants  []models.Participant
	Judges        []models.Judge
	Venues        []models.Venue
	Events        []models.HackathonEvent
	Sponsors      []models.Sponsor
	Submissions   []models.Submission
	Workshops     []models.Workshop
	Registrations []models.Registration
	Supports      []models.Supports
	Creates       []models.Creates
	Evaluates     []models.Evaluates
}

// Validate checks the row shapes the transformer relies on: primary keys and
// composite key parts must be set. Dangling references are not checked here.
func (s *Snapshot) Validate() error {
	var errs []error
	check := func(table string, i int, ok bool) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s row %d: missing key", table, i))
		}
	}
	for i, r := range s.People {
		check("Person", i, r.PersonID != 0)
	}
	for i, r := range s.Participants {
		check("Participant", i, r.PersonID != 0)
	}
	for i, r := range s.Judges {
		check("Judge", i, r.PersonID != 0)
	}
	for i, r := range s.Venues {
		check("Venue", i, r.VenueID != 0)
	}
	for i, r := range s.Events {
		check("HackathonEvent", i, r.EventID != 0)
	}
	for i, r := range s.Sponsors {
		check("Sponsor", i, r.SponsorID != 0)
	}
	for i, r := range s.Submissions {
		check("Submission", i, r.SubmissionID != 0)
	}
	for i, r := range s.Workshops {
		check("Workshop", i, r.EventID != 0)
	}
	for i, r := range s.Registrations {
		check("Registration", i, r.PersonID != 0 && r.EventID != 0)
	}
	for i, r := range s.Supports {
		check("Supports", i, r.SponsorID != 0 && r.EventID != 0)
	}
	for i, r := range s.Creates {
		check("Creates", i, r.PersonID != 0 && r.SubmissionID != 0)
	}
	for i, r := range s.Evaluates {
		check("Evaluates", i, r.PersonID != 0 && r.SubmissionID != 0)
	}
	return errors.Join(errs...)
}

// Counts returns the row count per relational table.
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		"Person":         len(s.People),
		"Participant":    len(s.Participants),
		"Judge":          len(s.Judges),
		"Venue":          len(s.Venues),
		"HackathonEvent": len(s.Events),
		"Sponsor":        len(s.Sponsors),
		"Submission":     len(s.Submissions),
		"Workshop":       len(s.Workshops),
		"Registration":   len(s.Registrations),
		"Supports":       len(s.Supports),
		"Creates":        len(s.Creates),
		"Evaluates":      len(s.Evaluates),
	}
}
