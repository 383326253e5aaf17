package denorm

import "time"

// Snapshots are point-in-time copies embedded in documents. They do not
// follow later relational changes.

type PersonSnapshot struct {
	PersonID  int64   `bson:"person_id" json:"person_id"`
	FirstName string  `bson:"first_name" json:"first_name"`
	LastName  string  `bson:"last_name" json:"last_name"`
	Email     string  `bson:"email" json:"email"`
	Phone     *string `bson:"phone" json:"phone"`
}

// FullName joins first and last name.
func (p PersonSnapshot) FullName() string { return p.FirstName + " " + p.LastName }

type VenueSnapshot struct {
	VenueID  int64  `bson:"venue_id" json:"venue_id"`
	Name     string `bson:"name" json:"name"`
	Address  string `bson:"address" json:"address"`
	Capacity int    `bson:"capacity" json:"capacity"`
}

// VenueDetail is the venue embedded in an event document; it also carries
// facilities.
type VenueDetail struct {
	VenueSnapshot `bson:",inline"`
	Facilities    *string `bson:"facilities" json:"facilities"`
}

type EventSnapshot struct {
	EventID         int64          `bson:"event_id" json:"event_id"`
	Name            string         `bson:"name" json:"name"`
	EventType       string         `bson:"event_type" json:"event_type"`
	StartDate       time.Time      `bson:"start_date" json:"start_date"`
	EndDate         time.Time      `bson:"end_date" json:"end_date"`
	MaxParticipants int            `bson:"max_participants" json:"max_participants"`
	Venue           *VenueSnapshot `bson:"venue" json:"venue"`
}

type JudgeSnapshot struct {
	PersonSnapshot `bson:",inline"`
	ExpertiseArea  string `bson:"expertise_area,omitempty" json:"expertise_area,omitempty"`
	Organization   string `bson:"organization,omitempty" json:"organization,omitempty"`
}

// ---------------- participants ----------------

type ParticipantDoc struct {
	ID            int64                     `bson:"_id" json:"_id"`
	Person        *PersonSnapshot           `bson:"person" json:"person"`
	Participant   ParticipantInfo           `bson:"participant" json:"participant"`
	Registrations []ParticipantRegistration `bson:"registrations" json:"registrations"`
	Submissions   []SubmissionSummary       `bson:"submissions" json:"submissions"`
}

type ParticipantInfo struct {
	RegistrationDate    time.Time   `bson:"registration_date" json:"registration_date"`
	TShirtSize          string      `bson:"t_shirt_size" json:"t_shirt_size"`
	DietaryRestrictions *string     `bson:"dietary_restrictions" json:"dietary_restrictions"`
	ManagerID           *int64      `bson:"manager_id" json:"manager_id"`
	Manager             *ManagerRef `bson:"manager" json:"manager"`
}

type ManagerRef struct {
	PersonID int64  `bson:"person_id" json:"person_id"`
	Name     string `bson:"name" json:"name"`
}

type ParticipantRegistration struct {
	EventID               int64          `bson:"event_id" json:"event_id"`
	RegistrationNumber    string         `bson:"registration_number" json:"registration_number"`
	RegistrationTimestamp time.Time      `bson:"registration_timestamp" json:"registration_timestamp"`
	PaymentStatus         string         `bson:"payment_status" json:"payment_status"`
	TicketType            string         `bson:"ticket_type" json:"ticket_type"`
	EventSnapshot         *EventSnapshot `bson:"event_snapshot" json:"event_snapshot"`
}

type SubmissionSummary struct {
	SubmissionID   int64          `bson:"submission_id" json:"submission_id"`
	ProjectName    string         `bson:"project_name" json:"project_name"`
	SubmissionTime time.Time      `bson:"submission_time" json:"submission_time"`
	RepositoryURL  string         `bson:"repository_url" json:"repository_url"`
	Event          *EventSnapshot `bson:"event" json:"event"`
}

// ---------------- events ----------------

type EventDoc struct {
	ID              int64               `bson:"_id" json:"_id"`
	Name            string              `bson:"name" json:"name"`
	StartDate       time.Time           `bson:"start_date" json:"start_date"`
	EndDate         time.Time           `bson:"end_date" json:"end_date"`
	EventType       string              `bson:"event_type" json:"event_type"`
	MaxParticipants int                 `bson:"max_participants" json:"max_participants"`
	Venue           *VenueDetail        `bson:"venue" json:"venue"`
	Workshops       []WorkshopDoc       `bson:"workshops" json:"workshops"`
	Sponsors        []SponsorSnapshot   `bson:"sponsors" json:"sponsors"`
	Registrations   []EventRegistration `bson:"registrations" json:"registrations"`
}

// Snapshot projects the event document back into an embeddable snapshot.
func (e EventDoc) Snapshot() *EventSnapshot {
	s := &EventSnapshot{
		EventID:         e.ID,
		Name:            e.Name,
		EventType:       e.EventType,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		MaxParticipants: e.MaxParticipants,
	}
	if e.Venue != nil {
		v := e.Venue.VenueSnapshot
		s.Venue = &v
	}
	return s
}

type WorkshopDoc struct {
	WorkshopNumber int    `bson:"workshop_number" json:"workshop_number"`
	Title          string `bson:"title" json:"title"`
	Description    string `bson:"description" json:"description"`
	Duration       int    `bson:"duration" json:"duration"`
	SkillLevel     string `bson:"skill_level" json:"skill_level"`
	MaxAttendees   int    `bson:"max_attendees" json:"max_attendees"`
}

type SponsorSnapshot struct {
	SponsorID          int64   `bson:"sponsor_id" json:"sponsor_id"`
	CompanyName        string  `bson:"company_name" json:"company_name"`
	Industry           string  `bson:"industry" json:"industry"`
	Website            *string `bson:"website" json:"website"`
	ContributionAmount float64 `bson:"contribution_amount" json:"contribution_amount"`
}

type EventRegistration struct {
	PersonID              int64           `bson:"person_id" json:"person_id"`
	RegistrationNumber    string          `bson:"registration_number" json:"registration_number"`
	RegistrationTimestamp time.Time       `bson:"registration_timestamp" json:"registration_timestamp"`
	PaymentStatus         string          `bson:"payment_status" json:"payment_status"`
	TicketType            string          `bson:"ticket_type" json:"ticket_type"`
	Participant           *PersonSnapshot `bson:"participant" json:"participant"`
}

// ---------------- submissions ----------------

type SubmissionDoc struct {
	ID              int64            `bson:"_id" json:"_id"`
	ProjectName     string           `bson:"project_name" json:"project_name"`
	Description     string           `bson:"description" json:"description"`
	SubmissionTime  time.Time        `bson:"submission_time" json:"submission_time"`
	TechnologyStack string           `bson:"technology_stack" json:"technology_stack"`
	RepositoryURL   string           `bson:"repository_url" json:"repository_url"`
	Event           *EventSnapshot   `bson:"event" json:"event"`
	Team            []PersonSnapshot `bson:"team" json:"team"`
	Evaluations     []EvaluationDoc  `bson:"evaluations" json:"evaluations"`
}

type EvaluationDoc struct {
	JudgeID  int64          `bson:"judge_id" json:"judge_id"`
	Score    float64        `bson:"score" json:"score"`
	Feedback *string        `bson:"feedback" json:"feedback"`
	Judge    *JudgeSnapshot `bson:"judge" json:"judge"`
}

// ---------------- legacy standalone collections ----------------

type JudgeDoc struct {
	ID          int64             `bson:"_id" json:"_id"`
	Person      *PersonSnapshot   `bson:"person" json:"person"`
	Judge       JudgeInfo         `bson:"judge" json:"judge"`
	Evaluations []JudgeEvaluation `bson:"evaluations" json:"evaluations"`
}

type JudgeInfo struct {
	ExpertiseArea   string `bson:"expertise_area" json:"expertise_area"`
	YearsExperience int    `bson:"years_experience" json:"years_experience"`
	Organization    string `bson:"organization" json:"organization"`
}

type JudgeEvaluation struct {
	SubmissionID int64   `bson:"submission_id" json:"submission_id"`
	ProjectName  *string `bson:"project_name" json:"project_name"`
	Score        float64 `bson:"score" json:"score"`
	Feedback     *string `bson:"feedback" json:"feedback"`
}

type SponsorDoc struct {
	ID                 int64           `bson:"_id" json:"_id"`
	CompanyName        string          `bson:"company_name" json:"company_name"`
	Industry           string          `bson:"industry" json:"industry"`
	Website            *string         `bson:"website" json:"website"`
	ContributionAmount float64         `bson:"contribution_amount" json:"contribution_amount"`
	SupportedEvents    []EventSnapshot `bson:"supported_events" json:"supported_events"`
}

type VenueDoc struct {
	ID         int64         `bson:"_id" json:"_id"`
	Name       string        `bson:"name" json:"name"`
	Address    string        `bson:"address" json:"address"`
	Capacity   int           `bson:"capacity" json:"capacity"`
	Facilities *string       `bson:"facilities" json:"facilities"`
	Events     []HostedEvent `bson:"events" json:"events"`
}

type HostedEvent struct {
	EventID         int64     `bson:"event_id" json:"event_id"`
	Name            string    `bson:"name" json:"name"`
	StartDate       time.Time `bson:"start_date" json:"start_date"`
	EndDate         time.Time `bson:"end_date" json:"end_date"`
	EventType       string    `bson:"event_type" json:"event_type"`
	MaxParticipants int       `bson:"max_participants" json:"max_participants"`
}
