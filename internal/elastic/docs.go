package elastic

import (
	"encoding/json"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
)

// EventDoc is the search projection of an event document.
type EventDoc struct {
	EventID           int64     `json:"event_id"`
	Name              string    `json:"name"`
	EventType         string    `json:"event_type"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	MaxParticipants   int       `json:"max_participants"`
	VenueName         string    `json:"venue_name,omitempty"`
	WorkshopTitles    []string  `json:"workshop_titles"`
	SkillLevels       []string  `json:"skill_levels"`
	SponsorNames      []string  `json:"sponsor_names"`
	RegistrationCount int       `json:"registration_count"`
}

func NewEventDoc(e denorm.EventDoc) EventDoc {
	d := EventDoc{
		EventID:           e.ID,
		Name:              e.Name,
		EventType:         e.EventType,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		MaxParticipants:   e.MaxParticipants,
		WorkshopTitles:    []string{},
		SkillLevels:       []string{},
		SponsorNames:      []string{},
		RegistrationCount: len(e.Registrations),
	}
	if e.Venue != nil {
		d.VenueName = e.Venue.Name
	}
	seen := map[string]bool{}
	for _, w := range e.Workshops {
		d.WorkshopTitles = append(d.WorkshopTitles, w.Title)
		if !seen[w.SkillLevel] {
			seen[w.SkillLevel] = true
			d.SkillLevels = append(d.SkillLevels, w.SkillLevel)
		}
	}
	for _, s := range e.Sponsors {
		d.SponsorNames = append(d.SponsorNames, s.CompanyName)
	}
	return d
}

func BuildEventDoc(e denorm.EventDoc) ([]byte, error) {
	return json.Marshal(NewEventDoc(e))
}
