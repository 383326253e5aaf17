package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"gorm.io/gorm"
)

// SubmissionRow is a submission with its team. TeamMembers renders the team
// as "First Last, First Last" in person id order.
type SubmissionRow struct {
	SubmissionID    int64     `json:"submission_id"`
	ProjectName     string    `json:"project_name"`
	Description     string    `json:"description"`
	SubmissionTime  time.Time `json:"submission_time"`
	TechnologyStack string    `json:"technology_stack"`
	RepositoryURL   string    `json:"repository_url"`
	EventID         *int64    `json:"event_id"`
	TeamMemberIDs   []int64   `json:"team_member_ids"`
	TeamMembers     string    `json:"team_members"`
}

func newSubmissionRow(sub models.Submission) SubmissionRow {
	return SubmissionRow{
		SubmissionID:    sub.SubmissionID,
		ProjectName:     sub.ProjectName,
		Description:     sub.Description,
		SubmissionTime:  sub.SubmissionTime,
		TechnologyStack: sub.TechnologyStack,
		RepositoryURL:   sub.RepositoryURL,
		EventID:         sub.EventID,
		TeamMemberIDs:   []int64{},
	}
}

// ListSubmissions returns every submission, newest first.
func (s *SQL) ListSubmissions(ctx context.Context) ([]SubmissionRow, error) {
	var subs []models.Submission
	if err := s.DB.WithContext(ctx).Order("submission_time DESC, submission_id DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	rows := make([]SubmissionRow, 0, len(subs))
	ids := make([]int64, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, newSubmissionRow(sub))
		ids = append(ids, sub.SubmissionID)
	}
	if err := s.fillTeams(ctx, rows, ids); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQL) GetSubmission(ctx context.Context, id int64) (*SubmissionRow, error) {
	var sub models.Submission
	if err := s.DB.WithContext(ctx).First(&sub, "submission_id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrSubmissionNotFound)
	}
	rows := []SubmissionRow{newSubmissionRow(sub)}
	if err := s.fillTeams(ctx, rows, []int64{id}); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// fillTeams attaches the Creates links to rows. Links whose person row is
// gone keep their id but add no name.
func (s *SQL) fillTeams(ctx context.Context, rows []SubmissionRow, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	var members []struct {
		SubmissionID int64
		PersonID     int64
		FirstName    *string
		LastName     *string
	}
	err := s.DB.WithContext(ctx).
		Table(s.table("Creates", "c")).
		Select("c.submission_id, c.person_id, p.first_name, p.last_name").
		Joins("LEFT JOIN "+s.table("Person", "p")+" ON p.person_id = c.person_id").
		Where("c.submission_id IN ?", ids).
		Order("c.submission_id, c.person_id").
		Scan(&members).Error
	if err != nil {
		return fmt.Errorf("submission teams: %w", err)
	}

	names := map[int64][]string{}
	teamIDs := map[int64][]int64{}
	for _, m := range members {
		teamIDs[m.SubmissionID] = append(teamIDs[m.SubmissionID], m.PersonID)
		if m.FirstName != nil && m.LastName != nil {
			names[m.SubmissionID] = append(names[m.SubmissionID], *m.FirstName+" "+*m.LastName)
		}
	}
	for i := range rows {
		id := rows[i].SubmissionID
		if t, ok := teamIDs[id]; ok {
			rows[i].TeamMemberIDs = t
		}
		rows[i].TeamMembers = strings.Join(names[id], ", ")
	}
	return nil
}

// DeleteSubmission removes the submission with its team links and
// evaluations in one transaction.
func (s *SQL) DeleteSubmission(ctx context.Context, id int64) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&models.Creates{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", id).Delete(&models.Evaluates{}).Error; err != nil {
			return err
		}
		res := tx.Where("submission_id = ?", id).Delete(&models.Submission{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrSubmissionNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info().Int64("submission_id", id).Msg("🗑️ Submission deleted")
	return nil
}

// ParticipantOption is a participant offered for team or event selection.
type ParticipantOption struct {
	PersonID         int64     `json:"person_id" gorm:"column:person_id"`
	FirstName        string    `json:"first_name" gorm:"column:first_name"`
	LastName         string    `json:"last_name" gorm:"column:last_name"`
	Email            string    `json:"email" gorm:"column:email"`
	RegistrationDate time.Time `json:"registration_date" gorm:"column:registration_date"`
}

func (s *SQL) participantOptions(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]ParticipantOption, error) {
	q := s.DB.WithContext(ctx).
		Table(s.table("Participant", "pt")).
		Select("pt.person_id, p.first_name, p.last_name, p.email, pt.registration_date").
		Joins("JOIN " + s.table("Person", "p") + " ON p.person_id = pt.person_id")
	if scope != nil {
		q = scope(q)
	}
	rows := []ParticipantOption{}
	if err := q.Order("p.last_name, p.first_name, pt.person_id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("participant options: %w", err)
	}
	return rows, nil
}

// TeamCandidates lists every participant that can join a submission team.
func (s *SQL) TeamCandidates(ctx context.Context) ([]ParticipantOption, error) {
	return s.participantOptions(ctx, nil)
}
