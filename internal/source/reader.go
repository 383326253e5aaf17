package source

import (
	"context"
	"fmt"

	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Reader reads full relational row sets. Reads are not wrapped in a
// transaction; a concurrent writer can produce a torn snapshot.
type Reader struct {
	DB *gorm.DB
}

func NewReader(db *gorm.DB) *Reader { return &Reader{DB: db} }

// ReadAll issues the twelve table reads concurrently and waits for all of
// them. The first error cancels the rest and is returned.
func (r *Reader) ReadAll(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	g, ctx := errgroup.WithContext(ctx)

	read := func(table, order string, dest any) {
		g.Go(func() error {
			if err := r.DB.WithContext(ctx).Order(order).Find(dest).Error; err != nil {
				return fmt.Errorf("read %s: %w", table, err)
			}
			return nil
		})
	}

	read("Person", "person_id", &s.People)
	read("Participant", "person_id", &s.Participants)
	read("Judge", "person_id", &s.Judges)
	read("Venue", "venue_id", &s.Venues)
	read("HackathonEvent", "event_id", &s.Events)
	read("Sponsor", "sponsor_id", &s.Sponsors)
	read("Submission", "submission_id", &s.Submissions)
	read("Workshop", "event_id, workshop_number", &s.Workshops)
	read("Registration", "event_id, person_id", &s.Registrations)
	read("Supports", "event_id, sponsor_id", &s.Supports)
	read("Creates", "submission_id, person_id", &s.Creates)
	read("Evaluates", "submission_id, person_id", &s.Evaluates)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid relational rows: %w", err)
	}

	logger.Debug().Interface("rows", s.Counts()).Msg("📥 relational snapshot read")
	return &s, nil
}
