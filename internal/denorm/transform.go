package denorm

import (
	"cmp"
	"slices"

	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"github.com/sirdesai22/hackathon-docsync/internal/source"
)

// Options selects the output collection set.
type Options struct {
	// Legacy also emits standalone judges, sponsors and venues documents.
	Legacy bool
}

// Result is the in-memory output of one transform.
type Result struct {
	Participants []ParticipantDoc
	Events       []EventDoc
	Submissions  []SubmissionDoc

	// Legacy only.
	Judges   []JudgeDoc
	Sponsors []SponsorDoc
	Venues   []VenueDoc

	Warnings Warnings
	Stats    Stats
}

// index holds the per-call lookups. It is built from one snapshot and
// discarded with it.
type index struct {
	people       map[int64]models.Person
	participants map[int64]models.Participant
	judges       map[int64]models.Judge
	venues       map[int64]models.Venue
	events       map[int64]models.HackathonEvent
	sponsors     map[int64]models.Sponsor
	submissions  map[int64]models.Submission

	workshopsByEvent      map[int64][]models.Workshop
	registrationsByEvent  map[int64][]models.Registration
	registrationsByPerson map[int64][]models.Registration
	supportsByEvent       map[int64][]models.Supports
	supportsBySponsor     map[int64][]models.Supports
	createsBySubmission   map[int64][]models.Creates
	createsByPerson       map[int64][]models.Creates
	evaluatesBySubmission map[int64][]models.Evaluates
	evaluatesByJudge      map[int64][]models.Evaluates
	eventsByVenue         map[int64][]models.HackathonEvent
}

func byID[T any](rows []T, key func(T) int64) map[int64]T {
	m := make(map[int64]T, len(rows))
	for _, r := range rows {
		m[key(r)] = r
	}
	return m
}

func groupBy[T any](rows []T, key func(T) int64) map[int64][]T {
	m := make(map[int64][]T)
	for _, r := range rows {
		k := key(r)
		m[k] = append(m[k], r)
	}
	return m
}

func buildIndex(s *source.Snapshot) *index {
	return &index{
		people:       byID(s.People, func(r models.Person) int64 { return r.PersonID }),
		participants: byID(s.Participants, func(r models.Participant) int64 { return r.PersonID }),
		judges:       byID(s.Judges, func(r models.Judge) int64 { return r.PersonID }),
		venues:       byID(s.Venues, func(r models.Venue) int64 { return r.VenueID }),
		events:       byID(s.Events, func(r models.HackathonEvent) int64 { return r.EventID }),
		sponsors:     byID(s.Sponsors, func(r models.Sponsor) int64 { return r.SponsorID }),
		submissions:  byID(s.Submissions, func(r models.Submission) int64 { return r.SubmissionID }),

		workshopsByEvent:      groupBy(s.Workshops, func(r models.Workshop) int64 { return r.EventID }),
		registrationsByEvent:  groupBy(s.Registrations, func(r models.Registration) int64 { return r.EventID }),
		registrationsByPerson: groupBy(s.Registrations, func(r models.Registration) int64 { return r.PersonID }),
		supportsByEvent:       groupBy(s.Supports, func(r models.Supports) int64 { return r.EventID }),
		supportsBySponsor:     groupBy(s.Supports, func(r models.Supports) int64 { return r.SponsorID }),
		createsBySubmission:   groupBy(s.Creates, func(r models.Creates) int64 { return r.SubmissionID }),
		createsByPerson:       groupBy(s.Creates, func(r models.Creates) int64 { return r.PersonID }),
		evaluatesBySubmission: groupBy(s.Evaluates, func(r models.Evaluates) int64 { return r.SubmissionID }),
		evaluatesByJudge:      groupBy(s.Evaluates, func(r models.Evaluates) int64 { return r.PersonID }),
		eventsByVenue:         groupBy(s.Events, func(r models.HackathonEvent) int64 { return r.VenueID }),
	}
}

func lookup[T any](m map[int64]T, id int64) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

// Transform reshapes a relational snapshot into documents. It never fails on
// referential gaps: missing targets become nil snapshots or are dropped from
// arrays, and each gap is counted in Warnings.
func Transform(s *source.Snapshot, opts Options) *Result {
	idx := buildIndex(s)
	res := &Result{}

	res.Participants = buildParticipants(s.Participants, idx, &res.Warnings)
	res.Events = buildEvents(s.Events, idx, &res.Warnings)
	res.Submissions = buildSubmissions(s.Submissions, idx, &res.Warnings)

	if opts.Legacy {
		res.Judges = buildJudges(s.Judges, idx)
		res.Sponsors = buildSponsors(s.Sponsors, idx)
		res.Venues = buildVenues(s.Venues, idx)
	}

	for eventID, ws := range idx.workshopsByEvent {
		if _, ok := idx.events[eventID]; !ok {
			res.Warnings.WorkshopsMissingEvent += len(ws)
		}
	}

	res.Stats = buildStats(res, len(s.Workshops), opts.Legacy)
	return res
}

func buildPersonSnapshot(p *models.Person) *PersonSnapshot {
	if p == nil {
		return nil
	}
	return &PersonSnapshot{
		PersonID:  p.PersonID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
	}
}

func buildVenueSnapshot(v *models.Venue) *VenueSnapshot {
	if v == nil {
		return nil
	}
	return &VenueSnapshot{VenueID: v.VenueID, Name: v.Name, Address: v.Address, Capacity: v.Capacity}
}

func buildEventSnapshot(e *models.HackathonEvent, v *models.Venue) *EventSnapshot {
	if e == nil {
		return nil
	}
	return &EventSnapshot{
		EventID:         e.EventID,
		Name:            e.Name,
		EventType:       e.EventType,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		MaxParticipants: e.MaxParticipants,
		Venue:           buildVenueSnapshot(v),
	}
}

// eventSnapshotByID resolves an event and its venue. ok is false when the
// event does not exist.
func (idx *index) eventSnapshotByID(eventID int64) (snap *EventSnapshot, ok bool) {
	e := lookup(idx.events, eventID)
	if e == nil {
		return nil, false
	}
	return buildEventSnapshot(e, lookup(idx.venues, e.VenueID)), true
}

// managerRef resolves a manager that is itself a participant with a person
// row; anything else yields nil.
func (idx *index) managerRef(managerID *int64) *ManagerRef {
	if managerID == nil {
		return nil
	}
	if _, ok := idx.participants[*managerID]; !ok {
		return nil
	}
	p := lookup(idx.people, *managerID)
	if p == nil {
		return nil
	}
	return &ManagerRef{PersonID: p.PersonID, Name: p.FirstName + " " + p.LastName}
}

func buildParticipants(rows []models.Participant, idx *index, w *Warnings) []ParticipantDoc {
	docs := make([]ParticipantDoc, 0, len(rows))
	for _, p := range rows {
		regs := sortedRegistrations(idx.registrationsByPerson[p.PersonID])
		regDocs := make([]ParticipantRegistration, 0, len(regs))
		for _, r := range regs {
			snap, ok := idx.eventSnapshotByID(r.EventID)
			if !ok {
				w.RegistrationsMissingEvent++
			}
			regDocs = append(regDocs, ParticipantRegistration{
				EventID:               r.EventID,
				RegistrationNumber:    r.RegistrationNumber,
				RegistrationTimestamp: r.RegistrationTimestamp,
				PaymentStatus:         r.PaymentStatus,
				TicketType:            r.TicketType,
				EventSnapshot:         snap,
			})
		}

		created := idx.createsByPerson[p.PersonID]
		subDocs := make([]SubmissionSummary, 0, len(created))
		for _, c := range created {
			sub := lookup(idx.submissions, c.SubmissionID)
			if sub == nil {
				w.CreatesMissingSubmission++
				continue
			}
			var event *EventSnapshot
			if sub.EventID != nil {
				event, _ = idx.eventSnapshotByID(*sub.EventID)
			}
			subDocs = append(subDocs, SubmissionSummary{
				SubmissionID:   sub.SubmissionID,
				ProjectName:    sub.ProjectName,
				SubmissionTime: sub.SubmissionTime,
				RepositoryURL:  sub.RepositoryURL,
				Event:          event,
			})
		}
		slices.SortFunc(subDocs, func(a, b SubmissionSummary) int { return cmp.Compare(a.SubmissionID, b.SubmissionID) })

		person := buildPersonSnapshot(lookup(idx.people, p.PersonID))
		if person == nil {
			w.ParticipantsMissingPerson++
		}
		docs = append(docs, ParticipantDoc{
			ID:     p.PersonID,
			Person: person,
			Participant: ParticipantInfo{
				RegistrationDate:    p.RegistrationDate,
				TShirtSize:          p.TShirtSize,
				DietaryRestrictions: p.DietaryRestrictions,
				ManagerID:           p.ManagerID,
				Manager:             idx.managerRef(p.ManagerID),
			},
			Registrations: regDocs,
			Submissions:   subDocs,
		})
	}
	slices.SortFunc(docs, func(a, b ParticipantDoc) int { return cmp.Compare(a.ID, b.ID) })
	return docs
}

func buildEvents(rows []models.HackathonEvent, idx *index, w *Warnings) []EventDoc {
	docs := make([]EventDoc, 0, len(rows))
	for _, e := range rows {
		var venue *VenueDetail
		if v := lookup(idx.venues, e.VenueID); v != nil {
			venue = &VenueDetail{VenueSnapshot: *buildVenueSnapshot(v), Facilities: v.Facilities}
		}

		regs := sortedRegistrations(idx.registrationsByEvent[e.EventID])
		regDocs := make([]EventRegistration, 0, len(regs))
		for _, r := range regs {
			person := buildPersonSnapshot(lookup(idx.people, r.PersonID))
			if person == nil {
				w.RegistrationsMissingPerson++
			}
			regDocs = append(regDocs, EventRegistration{
				PersonID:              r.PersonID,
				RegistrationNumber:    r.RegistrationNumber,
				RegistrationTimestamp: r.RegistrationTimestamp,
				PaymentStatus:         r.PaymentStatus,
				TicketType:            r.TicketType,
				Participant:           person,
			})
		}

		links := idx.supportsByEvent[e.EventID]
		sponsors := make([]SponsorSnapshot, 0, len(links))
		for _, l := range links {
			s := lookup(idx.sponsors, l.SponsorID)
			if s == nil {
				w.SupportsMissingSponsor++
				continue
			}
			sponsors = append(sponsors, SponsorSnapshot{
				SponsorID:          s.SponsorID,
				CompanyName:        s.CompanyName,
				Industry:           s.Industry,
				Website:            s.Website,
				ContributionAmount: s.ContributionAmount,
			})
		}
		slices.SortFunc(sponsors, func(a, b SponsorSnapshot) int { return cmp.Compare(a.SponsorID, b.SponsorID) })

		docs = append(docs, EventDoc{
			ID:              e.EventID,
			Name:            e.Name,
			StartDate:       e.StartDate,
			EndDate:         e.EndDate,
			EventType:       e.EventType,
			MaxParticipants: e.MaxParticipants,
			Venue:           venue,
			Workshops:       workshopDocs(idx.workshopsByEvent[e.EventID]),
			Sponsors:        sponsors,
			Registrations:   regDocs,
		})
	}
	slices.SortFunc(docs, func(a, b EventDoc) int { return cmp.Compare(a.ID, b.ID) })
	return docs
}

func workshopDocs(rows []models.Workshop) []WorkshopDoc {
	docs := make([]WorkshopDoc, 0, len(rows))
	for _, w := range rows {
		docs = append(docs, WorkshopDoc{
			WorkshopNumber: w.WorkshopNumber,
			Title:          w.Title,
			Description:    w.Description,
			Duration:       w.Duration,
			SkillLevel:     w.SkillLevel,
			MaxAttendees:   w.MaxAttendees,
		})
	}
	slices.SortFunc(docs, func(a, b WorkshopDoc) int { return cmp.Compare(a.WorkshopNumber, b.WorkshopNumber) })
	return docs
}

func buildSubmissions(rows []models.Submission, idx *index, w *Warnings) []SubmissionDoc {
	docs := make([]SubmissionDoc, 0, len(rows))
	for _, s := range rows {
		creators := idx.createsBySubmission[s.SubmissionID]
		team := make([]PersonSnapshot, 0, len(creators))
		for _, c := range creators {
			p := buildPersonSnapshot(lookup(idx.people, c.PersonID))
			if p == nil {
				w.CreatesMissingPerson++
				continue
			}
			team = append(team, *p)
		}
		slices.SortFunc(team, func(a, b PersonSnapshot) int { return cmp.Compare(a.PersonID, b.PersonID) })

		var event *EventSnapshot
		if s.EventID != nil {
			snap, ok := idx.eventSnapshotByID(*s.EventID)
			if !ok {
				w.SubmissionsMissingEvent++
			}
			event = snap
		}

		evals := idx.evaluatesBySubmission[s.SubmissionID]
		evalDocs := make([]EvaluationDoc, 0, len(evals))
		for _, e := range evals {
			judge := buildJudgeSnapshot(lookup(idx.people, e.PersonID), lookup(idx.judges, e.PersonID))
			if judge == nil {
				w.EvaluationsMissingJudge++
			}
			evalDocs = append(evalDocs, EvaluationDoc{
				JudgeID:  e.PersonID,
				Score:    e.Score,
				Feedback: e.Feedback,
				Judge:    judge,
			})
		}
		slices.SortFunc(evalDocs, func(a, b EvaluationDoc) int { return cmp.Compare(a.JudgeID, b.JudgeID) })

		docs = append(docs, SubmissionDoc{
			ID:              s.SubmissionID,
			ProjectName:     s.ProjectName,
			Description:     s.Description,
			SubmissionTime:  s.SubmissionTime,
			TechnologyStack: s.TechnologyStack,
			RepositoryURL:   s.RepositoryURL,
			Event:           event,
			Team:            team,
			Evaluations:     evalDocs,
		})
	}
	slices.SortFunc(docs, func(a, b SubmissionDoc) int { return cmp.Compare(a.ID, b.ID) })
	return docs
}

// buildJudgeSnapshot needs the person row; the judge role row only adds
// expertise fields.
func buildJudgeSnapshot(p *models.Person, j *models.Judge) *JudgeSnapshot {
	person := buildPersonSnapshot(p)
	if person == nil {
		return nil
	}
	snap := &JudgeSnapshot{PersonSnapshot: *person}
	if j != nil {
		snap.ExpertiseArea = j.ExpertiseArea
		snap.Organization = j.Organization
	}
	return snap
}

func sortedRegistrations(rows []models.Registration) []models.Registration {
	out := slices.Clone(rows)
	slices.SortFunc(out, func(a, b models.Registration) int {
		return cmp.Or(
			cmp.Compare(a.RegistrationNumber, b.RegistrationNumber),
			cmp.Compare(a.EventID, b.EventID),
			cmp.Compare(a.PersonID, b.PersonID),
		)
	})
	return out
}
