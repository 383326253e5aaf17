package models

import (
	"fmt"
	"strings"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
)

// SubmissionRequest creates a submission and its team links.
type SubmissionRequest struct {
	ProjectName     string  `json:"project_name"`
	Description     string  `json:"description"`
	TechnologyStack string  `json:"technology_stack"`
	RepositoryURL   string  `json:"repository_url"`
	EventID         *int64  `json:"event_id"`
	TeamMemberIDs   []int64 `json:"team_member_ids"`
}

func (r *SubmissionRequest) Normalize() error {
	r.ProjectName = strings.TrimSpace(r.ProjectName)
	if r.ProjectName == "" {
		return fmt.Errorf("%w: project_name is required", apperrors.ErrBadRequest)
	}
	if len(r.TeamMemberIDs) == 0 {
		return fmt.Errorf("%w: at least one team member is required", apperrors.ErrBadRequest)
	}
	seen := map[int64]bool{}
	members := r.TeamMemberIDs[:0]
	for _, id := range r.TeamMemberIDs {
		if id <= 0 {
			return fmt.Errorf("%w: invalid team member id %d", apperrors.ErrBadRequest, id)
		}
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	r.TeamMemberIDs = members
	return nil
}
