package db

import (
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"gorm.io/gorm"
)

type dataset struct {
	People        []models.Person
	Participants  []models.Participant
	Judges        []models.Judge
	Venues        []models.Venue
	Events        []models.HackathonEvent
	Sponsors      []models.Sponsor
	Workshops     []models.Workshop
	Submissions   []models.Submission
	Registrations []models.Registration
	Supports      []models.Supports
	Creates       []models.Creates
	Evaluates     []models.Evaluates
}

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

// demoDataset is a small fixed dataset covering every table.
func demoDataset() dataset {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	at := func(y int, m time.Month, d, h int) time.Time { return time.Date(y, m, d, h, 0, 0, 0, time.UTC) }

	return dataset{
		People: []models.Person{
			{PersonID: 1, FirstName: "Anna", LastName: "Mueller", Email: "anna.mueller@univie.ac.at", Phone: strPtr("+43-660-1234567")},
			{PersonID: 2, FirstName: "Felix", LastName: "Weber", Email: "felix.weber@gmail.com"},
			{PersonID: 3, FirstName: "Sophie", LastName: "Koch", Email: "sophie.koch@outlook.com", Phone: strPtr("+43-699-7654321")},
			{PersonID: 4, FirstName: "Thomas", LastName: "Huber", Email: "thomas.huber@tuwien.ac.at"},
		},
		Participants: []models.Participant{
			{PersonID: 1, RegistrationDate: day(2025, 1, 10), TShirtSize: "M", DietaryRestrictions: strPtr("Vegetarian")},
			{PersonID: 2, RegistrationDate: day(2025, 1, 12), TShirtSize: "L", ManagerID: int64Ptr(1)},
			{PersonID: 3, RegistrationDate: day(2025, 2, 1), TShirtSize: "S"},
		},
		Judges: []models.Judge{
			{PersonID: 4, ExpertiseArea: "Machine Learning", YearsExperience: 12, Organization: "TU Vienna"},
		},
		Venues: []models.Venue{
			{VenueID: 10, Name: "Tech Hub Vienna", Address: "Mariahilfer Strasse 123, 1060 Vienna", Capacity: 200, Facilities: strPtr("WiFi, Projectors, Catering")},
		},
		Events: []models.HackathonEvent{
			{EventID: 100, Name: "AI Innovation Hackathon", StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 3), EventType: "Hackathon", MaxParticipants: 2, VenueID: 10},
			{EventID: 101, Name: "Green Tech Challenge", StartDate: day(2025, 9, 12), EndDate: day(2025, 9, 14), EventType: "Hackathon", MaxParticipants: 50, VenueID: 10},
		},
		Sponsors: []models.Sponsor{
			{SponsorID: 1, CompanyName: "Bitpanda", Industry: "Finance", Website: strPtr("https://bitpanda.com"), ContributionAmount: 5000},
		},
		Workshops: []models.Workshop{
			{EventID: 100, WorkshopNumber: 1, Title: "Intro to LLMs", Description: "Prompting and evaluation", Duration: 90, SkillLevel: "Beginner", MaxAttendees: 30},
			{EventID: 100, WorkshopNumber: 2, Title: "Fine-tuning", Description: "LoRA in practice", Duration: 120, SkillLevel: "Advanced", MaxAttendees: 15},
			{EventID: 101, WorkshopNumber: 1, Title: "Carbon APIs", Description: "Measuring emissions", Duration: 60, SkillLevel: "Intermediate", MaxAttendees: 25},
		},
		Submissions: []models.Submission{
			{SubmissionID: 500, ProjectName: "Smart Home IoT Platform", Description: "Energy-aware home automation", SubmissionTime: at(2025, 6, 3, 14), TechnologyStack: "Go, React, MongoDB", RepositoryURL: "https://github.com/example/smart-home", EventID: int64Ptr(100)},
		},
		Registrations: []models.Registration{
			{PersonID: 1, EventID: 100, RegistrationNumber: "REG-2025-001", RegistrationTimestamp: at(2025, 5, 1, 9), PaymentStatus: "completed", TicketType: "Standard"},
			{PersonID: 3, EventID: 101, RegistrationNumber: "REG-2025-002", RegistrationTimestamp: at(2025, 8, 20, 11), PaymentStatus: "pending", TicketType: "Student"},
		},
		Supports: []models.Supports{{SponsorID: 1, EventID: 100}},
		Creates:  []models.Creates{{PersonID: 1, SubmissionID: 500}, {PersonID: 2, SubmissionID: 500}},
		Evaluates: []models.Evaluates{
			{PersonID: 4, SubmissionID: 500, Score: 8.5, Feedback: strPtr("Solid architecture")},
		},
	}
}

// Seed inserts the demo dataset when the Person table is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Person{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info().Msg("🌱 Data already exists, skipping seed.")
		return nil
	}

	ds := demoDataset()
	return db.Transaction(func(tx *gorm.DB) error {
		for _, rows := range []any{
			&ds.People, &ds.Participants, &ds.Judges, &ds.Venues, &ds.Events, &ds.Sponsors,
			&ds.Workshops, &ds.Submissions, &ds.Registrations, &ds.Supports, &ds.Creates, &ds.Evaluates,
		} {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}
		logger.Info().Msg("🌱 Sample data inserted successfully.")
		return nil
	})
}
