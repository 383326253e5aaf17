package denorm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"github.com/sirdesai22/hackathon-docsync/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var start = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// registrationScenario: 3 people, 1 venue, 1 event, 2 participants, person 1
// registered for event 100.
func registrationScenario() *source.Snapshot {
	return &source.Snapshot{
		People: []models.Person{
			{PersonID: 1, FirstName: "Anna", LastName: "Mueller", Email: "anna@example.com"},
			{PersonID: 2, FirstName: "Felix", LastName: "Weber", Email: "felix@example.com"},
			{PersonID: 3, FirstName: "Sophie", LastName: "Koch", Email: "sophie@example.com"},
		},
		Participants: []models.Participant{{PersonID: 1, TShirtSize: "M"}, {PersonID: 2, TShirtSize: "L"}},
		Venues:       []models.Venue{{VenueID: 10, Name: "Tech Hub", Capacity: 200}},
		Events: []models.HackathonEvent{
			{EventID: 100, Name: "AI Hack", StartDate: start, MaxParticipants: 2, VenueID: 10},
		},
		Registrations: []models.Registration{
			{PersonID: 1, EventID: 100, RegistrationNumber: "REG-1", PaymentStatus: "pending", TicketType: "Standard"},
		},
	}
}

func TestTransformRegistrationScenario(t *testing.T) {
	res := Transform(registrationScenario(), Options{})

	require.Len(t, res.Events, 1)
	event := res.Events[0]
	assert.Equal(t, int64(100), event.ID)
	require.Len(t, event.Registrations, 1)
	assert.Equal(t, int64(1), event.Registrations[0].PersonID)
	require.NotNil(t, event.Registrations[0].Participant)
	assert.Equal(t, "Anna", event.Registrations[0].Participant.FirstName)

	require.Len(t, res.Participants, 2)
	p1, p2 := res.Participants[0], res.Participants[1]
	assert.Equal(t, int64(1), p1.ID)
	require.Len(t, p1.Registrations, 1)
	require.NotNil(t, p1.Registrations[0].EventSnapshot)
	require.NotNil(t, p1.Registrations[0].EventSnapshot.Venue)
	assert.Equal(t, int64(10), p1.Registrations[0].EventSnapshot.Venue.VenueID)

	assert.Equal(t, int64(2), p2.ID)
	assert.Empty(t, p2.Registrations)
	assert.NotNil(t, p2.Registrations, "empty arrays stay arrays, not null")

	assert.Zero(t, res.Warnings.Total())
}

func TestTransformCountConservation(t *testing.T) {
	s := registrationScenario()
	s.Submissions = []models.Submission{{SubmissionID: 500}, {SubmissionID: 501}}

	res := Transform(s, Options{})

	assert.Len(t, res.Participants, len(s.Participants))
	assert.Len(t, res.Events, len(s.Events))
	assert.Len(t, res.Submissions, len(s.Submissions))
	assert.Nil(t, res.Judges)
	assert.Nil(t, res.Sponsors)
	assert.Nil(t, res.Venues)
}

func TestTransformRegistrationMissingEvent(t *testing.T) {
	s := registrationScenario()
	s.Registrations = append(s.Registrations, models.Registration{
		PersonID: 2, EventID: 999, RegistrationNumber: "REG-2",
	})

	res := Transform(s, Options{})

	p2 := res.Participants[1]
	require.Len(t, p2.Registrations, 1)
	assert.Equal(t, int64(999), p2.Registrations[0].EventID)
	assert.Nil(t, p2.Registrations[0].EventSnapshot)
	assert.Equal(t, 1, res.Warnings.RegistrationsMissingEvent)
}

func TestTransformCreatesMissingPerson(t *testing.T) {
	s := registrationScenario()
	s.Submissions = []models.Submission{{SubmissionID: 500, ProjectName: "Smart Home"}}
	s.Creates = []models.Creates{{PersonID: 1, SubmissionID: 500}, {PersonID: 99, SubmissionID: 500}}

	res := Transform(s, Options{})

	require.Len(t, res.Submissions, 1)
	sub := res.Submissions[0]
	assert.Equal(t, int64(500), sub.ID)
	require.Len(t, sub.Team, 1)
	assert.Equal(t, int64(1), sub.Team[0].PersonID)
	assert.Equal(t, 1, res.Warnings.CreatesMissingPerson)

	require.Len(t, res.Participants[0].Submissions, 1)
	assert.Equal(t, "Smart Home", res.Participants[0].Submissions[0].ProjectName)
}

func TestTransformDropsDanglingLinks(t *testing.T) {
	s := registrationScenario()
	s.Creates = []models.Creates{{PersonID: 1, SubmissionID: 404}}
	s.Supports = []models.Supports{{SponsorID: 7, EventID: 100}}
	s.Registrations = append(s.Registrations, models.Registration{PersonID: 42, EventID: 100, RegistrationNumber: "REG-9"})
	s.Submissions = []models.Submission{{SubmissionID: 500, EventID: ptr(int64(12345))}}
	s.Evaluates = []models.Evaluates{{PersonID: 77, SubmissionID: 500, Score: 7}}
	s.Workshops = []models.Workshop{{EventID: 555, WorkshopNumber: 1}}

	res := Transform(s, Options{})

	assert.Empty(t, res.Participants[0].Submissions)
	assert.Equal(t, 1, res.Warnings.CreatesMissingSubmission)

	assert.Empty(t, res.Events[0].Sponsors)
	assert.Equal(t, 1, res.Warnings.SupportsMissingSponsor)

	require.Len(t, res.Events[0].Registrations, 2)
	assert.Nil(t, res.Events[0].Registrations[1].Participant)
	assert.Equal(t, 1, res.Warnings.RegistrationsMissingPerson)

	assert.Nil(t, res.Submissions[0].Event)
	assert.Equal(t, 1, res.Warnings.SubmissionsMissingEvent)

	require.Len(t, res.Submissions[0].Evaluations, 1)
	assert.Nil(t, res.Submissions[0].Evaluations[0].Judge)
	assert.Equal(t, 1, res.Warnings.EvaluationsMissingJudge)

	assert.Equal(t, 1, res.Warnings.WorkshopsMissingEvent)
	assert.Equal(t, 6, res.Warnings.Total())
}

func TestTransformSubmissionWithoutEventIsNotAWarning(t *testing.T) {
	s := registrationScenario()
	s.Submissions = []models.Submission{{SubmissionID: 500}}

	res := Transform(s, Options{})

	assert.Nil(t, res.Submissions[0].Event)
	assert.Zero(t, res.Warnings.SubmissionsMissingEvent)
}

func TestTransformMissingVenue(t *testing.T) {
	s := registrationScenario()
	s.Venues = nil

	res := Transform(s, Options{})

	assert.Nil(t, res.Events[0].Venue)
	require.NotNil(t, res.Participants[0].Registrations[0].EventSnapshot)
	assert.Nil(t, res.Participants[0].Registrations[0].EventSnapshot.Venue)
}

func TestTransformWorkshopsEmbeddedAndSorted(t *testing.T) {
	s := registrationScenario()
	s.Events = append(s.Events, models.HackathonEvent{EventID: 101, VenueID: 10})
	s.Workshops = []models.Workshop{
		{EventID: 100, WorkshopNumber: 3, SkillLevel: "Advanced"},
		{EventID: 100, WorkshopNumber: 1, SkillLevel: "Beginner"},
		{EventID: 101, WorkshopNumber: 2, SkillLevel: "Intermediate"},
	}

	res := Transform(s, Options{})

	require.Len(t, res.Events[0].Workshops, 2)
	assert.Equal(t, 1, res.Events[0].Workshops[0].WorkshopNumber)
	assert.Equal(t, 3, res.Events[0].Workshops[1].WorkshopNumber)
	assert.Equal(t, 3, res.Stats.WorkshopsEmbedded)
	assert.Equal(t, 3, res.Stats.WorkshopRows)
	assert.True(t, res.Stats.WorkshopsConsistent)
}

func TestTransformSymmetricEmbedding(t *testing.T) {
	s := registrationScenario()
	s.Events = append(s.Events, models.HackathonEvent{EventID: 101, VenueID: 10})
	s.Registrations = append(s.Registrations,
		models.Registration{PersonID: 2, EventID: 100, RegistrationNumber: "REG-2"},
		models.Registration{PersonID: 2, EventID: 101, RegistrationNumber: "REG-3"},
	)

	res := Transform(s, Options{})

	events := map[int64]EventDoc{}
	for _, e := range res.Events {
		events[e.ID] = e
	}
	for _, p := range res.Participants {
		for _, r := range p.Registrations {
			matches := 0
			for _, er := range events[r.EventID].Registrations {
				if er.PersonID == p.ID {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "participant %d event %d", p.ID, r.EventID)
		}
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	s := registrationScenario()
	s.Registrations = append(s.Registrations, models.Registration{PersonID: 2, EventID: 100, RegistrationNumber: "REG-0"})

	first, err := json.Marshal(Transform(s, Options{Legacy: true}))
	require.NoError(t, err)

	// Reversed input order must not change the output.
	s.Registrations[0], s.Registrations[1] = s.Registrations[1], s.Registrations[0]
	s.Participants[0], s.Participants[1] = s.Participants[1], s.Participants[0]
	second, err := json.Marshal(Transform(s, Options{Legacy: true}))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestTransformParticipantManager(t *testing.T) {
	s := registrationScenario()
	s.Participants[1].ManagerID = ptr(int64(1))

	res := Transform(s, Options{})

	require.NotNil(t, res.Participants[1].Participant.Manager)
	assert.Equal(t, "Anna Mueller", res.Participants[1].Participant.Manager.Name)
	assert.Nil(t, res.Participants[0].Participant.Manager)
}

func TestTransformSubmissionEvaluations(t *testing.T) {
	s := registrationScenario()
	s.Judges = []models.Judge{{PersonID: 3, ExpertiseArea: "IoT", Organization: "TU Vienna"}}
	s.Submissions = []models.Submission{{SubmissionID: 500, EventID: ptr(int64(100))}}
	s.Evaluates = []models.Evaluates{{PersonID: 3, SubmissionID: 500, Score: 9.5, Feedback: ptr("great")}}

	res := Transform(s, Options{})

	sub := res.Submissions[0]
	require.NotNil(t, sub.Event)
	assert.Equal(t, int64(100), sub.Event.EventID)
	require.Len(t, sub.Evaluations, 1)
	ev := sub.Evaluations[0]
	assert.Equal(t, int64(3), ev.JudgeID)
	assert.Equal(t, 9.5, ev.Score)
	require.NotNil(t, ev.Judge)
	assert.Equal(t, "Sophie", ev.Judge.FirstName)
	assert.Equal(t, "IoT", ev.Judge.ExpertiseArea)
}

func TestTransformLegacyCollections(t *testing.T) {
	s := registrationScenario()
	s.Judges = []models.Judge{{PersonID: 3, ExpertiseArea: "IoT", YearsExperience: 4}}
	s.Sponsors = []models.Sponsor{{SponsorID: 1, CompanyName: "Bitpanda"}}
	s.Supports = []models.Supports{{SponsorID: 1, EventID: 100}, {SponsorID: 1, EventID: 999}}
	s.Submissions = []models.Submission{{SubmissionID: 500, ProjectName: "Smart Home"}}
	s.Evaluates = []models.Evaluates{{PersonID: 3, SubmissionID: 500, Score: 8}, {PersonID: 3, SubmissionID: 404, Score: 2}}

	res := Transform(s, Options{Legacy: true})

	require.Len(t, res.Judges, 1)
	require.Len(t, res.Judges[0].Evaluations, 2)
	assert.Equal(t, int64(404), res.Judges[0].Evaluations[0].SubmissionID)
	assert.Nil(t, res.Judges[0].Evaluations[0].ProjectName)
	require.NotNil(t, res.Judges[0].Evaluations[1].ProjectName)
	assert.Equal(t, "Smart Home", *res.Judges[0].Evaluations[1].ProjectName)

	require.Len(t, res.Sponsors, 1)
	require.Len(t, res.Sponsors[0].SupportedEvents, 1)
	assert.Equal(t, int64(100), res.Sponsors[0].SupportedEvents[0].EventID)

	require.Len(t, res.Venues, 1)
	require.Len(t, res.Venues[0].Events, 1)
	assert.Equal(t, "AI Hack", res.Venues[0].Events[0].Name)

	assert.True(t, res.Stats.Legacy)
	assert.Equal(t, 1, res.Stats.Judges)
}

func TestStatsJSON(t *testing.T) {
	s := registrationScenario()
	s.Registrations = append(s.Registrations, models.Registration{PersonID: 2, EventID: 999, RegistrationNumber: "REG-2"})

	raw, err := json.Marshal(Transform(s, Options{}).Stats)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 2, got["participants"])
	assert.EqualValues(t, 1, got["events"])
	assert.EqualValues(t, 0, got["workshops (embedded)"])
	assert.EqualValues(t, 1, got["warnings_registrations_missing_event"])
	assert.NotContains(t, got, "judges")
}

func TestTransformParticipantMissingPerson(t *testing.T) {
	s := registrationScenario()
	s.Participants = append(s.Participants, models.Participant{PersonID: 8, TShirtSize: "XL"})

	res := Transform(s, Options{})

	require.Len(t, res.Participants, 3)
	orphan := res.Participants[2]
	assert.Equal(t, int64(8), orphan.ID)
	assert.Nil(t, orphan.Person)
	assert.Equal(t, "XL", orphan.Participant.TShirtSize)
	assert.Equal(t, 1, res.Warnings.ParticipantsMissingPerson)
	assert.Equal(t, 1, res.Warnings.Total())
	assert.Equal(t, 1, res.Stats.Warnings.Map()["participants_missing_person"])
}
