package models

import "time"

// Relational schema. Table names follow the original schema; no association
// fields are declared, so gorm creates no foreign-key constraints and
// dangling references stay representable.

// ---------------- PEOPLE ----------------
type Person struct {
	PersonID  int64  `gorm:"column:person_id;primaryKey;autoIncrement"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;size:191;not null"`
	Phone     *string
}

func (Person) TableName() string { return "Person" }

type Participant struct {
	PersonID            int64     `gorm:"column:person_id;primaryKey;autoIncrement:false"`
	RegistrationDate    time.Time `gorm:"type:date"`
	TShirtSize          string    `gorm:"column:t_shirt_size"`
	DietaryRestrictions *string
	ManagerID           *int64 `gorm:"index"` // self-referencing Participant
}

func (Participant) TableName() string { return "Participant" }

type Judge struct {
	PersonID        int64 `gorm:"column:person_id;primaryKey;autoIncrement:false"`
	ExpertiseArea   string
	YearsExperience int
	Organization    string
}

func (Judge) TableName() string { return "Judge" }

// ---------------- EVENTS ----------------
type Venue struct {
	VenueID    int64  `gorm:"column:venue_id;primaryKey;autoIncrement"`
	Name       string `gorm:"not null"`
	Address    string
	Capacity   int
	Facilities *string
}

func (Venue) TableName() string { return "Venue" }

type HackathonEvent struct {
	EventID         int64  `gorm:"column:event_id;primaryKey;autoIncrement"`
	Name            string `gorm:"not null"`
	StartDate       time.Time
	EndDate         time.Time
	EventType       string `gorm:"index"`
	MaxParticipants int
	VenueID         int64 `gorm:"index"`
}

func (HackathonEvent) TableName() string { return "HackathonEvent" }

type Sponsor struct {
	SponsorID          int64  `gorm:"column:sponsor_id;primaryKey;autoIncrement"`
	CompanyName        string `gorm:"not null"`
	Industry           string
	Website            *string
	ContributionAmount float64 `gorm:"type:decimal(12,2)"`
}

func (Sponsor) TableName() string { return "Sponsor" }

type Workshop struct {
	EventID        int64 `gorm:"column:event_id;primaryKey;autoIncrement:false"`
	WorkshopNumber int   `gorm:"column:workshop_number;primaryKey;autoIncrement:false"`
	Title          string
	Description    string
	Duration       int // minutes
	SkillLevel     string
	MaxAttendees   int
}

func (Workshop) TableName() string { return "Workshop" }

// ---------------- SUBMISSIONS ----------------
type Submission struct {
	SubmissionID    int64     `gorm:"column:submission_id;primaryKey;autoIncrement" json:"submission_id"`
	ProjectName     string    `gorm:"not null" json:"project_name"`
	Description     string    `json:"description"`
	SubmissionTime  time.Time `json:"submission_time"`
	TechnologyStack string    `json:"technology_stack"`
	RepositoryURL   string    `gorm:"column:repository_url" json:"repository_url"`
	EventID         *int64    `gorm:"index" json:"event_id"`
}

func (Submission) TableName() string { return "Submission" }

// ---------------- ASSOCIATIONS ----------------
type Registration struct {
	PersonID              int64  `gorm:"column:person_id;primaryKey;autoIncrement:false"`
	EventID               int64  `gorm:"column:event_id;primaryKey;autoIncrement:false"`
	RegistrationNumber    string `gorm:"uniqueIndex;size:64;not null"`
	RegistrationTimestamp time.Time
	PaymentStatus         string
	TicketType            string
}

func (Registration) TableName() string { return "Registration" }

type Supports struct {
	SponsorID int64 `gorm:"column:sponsor_id;primaryKey;autoIncrement:false"`
	EventID   int64 `gorm:"column:event_id;primaryKey;autoIncrement:false"`
}

func (Supports) TableName() string { return "Supports" }

type Creates struct {
	PersonID     int64 `gorm:"column:person_id;primaryKey;autoIncrement:false"`
	SubmissionID int64 `gorm:"column:submission_id;primaryKey;autoIncrement:false"`
}

func (Creates) TableName() string { return "Creates" }

type Evaluates struct {
	PersonID     int64   `gorm:"column:person_id;primaryKey;autoIncrement:false"` // judge
	SubmissionID int64   `gorm:"column:submission_id;primaryKey;autoIncrement:false"`
	Score        float64 `gorm:"type:decimal(5,2)"`
	Feedback     *string
}

func (Evaluates) TableName() string { return "Evaluates" }

// All lists every relational model, in dependency order.
func All() []any {
	return []any{
		&Person{}, &Participant{}, &Judge{},
		&Venue{}, &HackathonEvent{}, &Sponsor{}, &Workshop{},
		&Submission{}, &Registration{}, &Supports{}, &Creates{}, &Evaluates{},
		&MigrationRun{},
	}
}
