package denorm

import "encoding/json"

// Warnings counts referential gaps met during a transform.
type Warnings struct {
	RegistrationsMissingEvent  int `json:"registrations_missing_event"`
	RegistrationsMissingPerson int `json:"registrations_missing_person"`
	CreatesMissingSubmission   int `json:"creates_missing_submission"`
	CreatesMissingPerson       int `json:"creates_missing_person"`
	SubmissionsMissingEvent    int `json:"submissions_missing_event"`
	SupportsMissingSponsor     int `json:"supports_missing_sponsor"`
	EvaluationsMissingJudge    int `json:"evaluations_missing_judge"`
	WorkshopsMissingEvent      int `json:"workshops_missing_event"`
	ParticipantsMissingPerson  int `json:"participants_missing_person"`
}

// Map returns the counters keyed by their wire names.
func (w Warnings) Map() map[string]int {
	return map[string]int{
		"registrations_missing_event":  w.RegistrationsMissingEvent,
		"registrations_missing_person": w.RegistrationsMissingPerson,
		"creates_missing_submission":   w.CreatesMissingSubmission,
		"creates_missing_person":       w.CreatesMissingPerson,
		"submissions_missing_event":    w.SubmissionsMissingEvent,
		"supports_missing_sponsor":     w.SupportsMissingSponsor,
		"evaluations_missing_judge":    w.EvaluationsMissingJudge,
		"workshops_missing_event":      w.WorkshopsMissingEvent,
		"participants_missing_person":  w.ParticipantsMissingPerson,
	}
}

func (w Warnings) Total() int {
	total := 0
	for _, n := range w.Map() {
		total += n
	}
	return total
}

// Stats summarizes one transform. WorkshopsEmbedded against WorkshopRows is
// the cross-store consistency check: they match when no workshop dangles.
type Stats struct {
	Participants        int
	Events              int
	Submissions         int
	Judges              int
	Sponsors            int
	Venues              int
	WorkshopsEmbedded   int
	WorkshopRows        int
	WorkshopsConsistent bool
	Legacy              bool
	Warnings            Warnings
}

func buildStats(res *Result, workshopRows int, legacy bool) Stats {
	embedded := 0
	for _, e := range res.Events {
		embedded += len(e.Workshops)
	}
	return Stats{
		Participants:        len(res.Participants),
		Events:              len(res.Events),
		Submissions:         len(res.Submissions),
		Judges:              len(res.Judges),
		Sponsors:            len(res.Sponsors),
		Venues:              len(res.Venues),
		WorkshopsEmbedded:   embedded,
		WorkshopRows:        workshopRows,
		WorkshopsConsistent: embedded == workshopRows-res.Warnings.WorkshopsMissingEvent,
		Legacy:              legacy,
		Warnings:            res.Warnings,
	}
}

// MarshalJSON flattens the warnings into warnings_* keys next to the counts.
func (s Stats) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"participants":           s.Participants,
		"events":                 s.Events,
		"submissions":            s.Submissions,
		"workshops (embedded)":   s.WorkshopsEmbedded,
		"workshops (relational)": s.WorkshopRows,
		"workshops_consistent":   s.WorkshopsConsistent,
	}
	if s.Legacy {
		out["judges"] = s.Judges
		out["sponsors"] = s.Sponsors
		out["venues"] = s.Venues
	}
	for k, v := range s.Warnings.Map() {
		out["warnings_"+k] = v
	}
	return json.Marshal(out)
}
