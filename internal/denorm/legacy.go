package denorm

import (
	"cmp"
	"slices"

	"github.com/sirdesai22/hackathon-docsync/internal/models"
)

// Standalone judges, sponsors and venues documents, each carrying the reverse
// side of its relationships.

func buildJudges(rows []models.Judge, idx *index) []JudgeDoc {
	docs := make([]JudgeDoc, 0, len(rows))
	for _, j := range rows {
		evals := idx.evaluatesByJudge[j.PersonID]
		evalDocs := make([]JudgeEvaluation, 0, len(evals))
		for _, e := range evals {
			var projectName *string
			if s := lookup(idx.submissions, e.SubmissionID); s != nil {
				projectName = &s.ProjectName
			}
			evalDocs = append(evalDocs, JudgeEvaluation{
				SubmissionID: e.SubmissionID,
				ProjectName:  projectName,
				Score:        e.Score,
				Feedback:     e.Feedback,
			})
		}
		slices.SortFunc(evalDocs, func(a, b JudgeEvaluation) int { return cmp.Compare(a.SubmissionID, b.SubmissionID) })

		docs = append(docs, JudgeDoc{
			ID:     j.PersonID,
			Person: buildPersonSnapshot(lookup(idx.people, j.PersonID)),
			Judge: JudgeInfo{
				ExpertiseArea:   j.ExpertiseArea,
				YearsExperience: j.YearsExperience,
				Organization:    j.Organization,
			},
			Evaluations: evalDocs,
		})
	}
	slices.SortFunc(docs, func(a, b JudgeDoc) int { return cmp.Compare(a.ID, b.ID) })
	return docs
}

func buildSponsors(rows []models.Sponsor, idx *index) []SponsorDoc {
	docs := make([]SponsorDoc, 0, len(rows))
	for _, s := range rows {
		links := idx.supportsBySponsor[s.SponsorID]
		events := make([]EventSnapshot, 0, len(links))
		for _, l := range links {
			if snap, ok := idx.eventSnapshotByID(l.EventID); ok {
				events = append(events, *snap)
			}
		}
		slices.SortFunc(events, func(a, b EventSnapshot) int { return cmp.Compare(a.EventID, b.EventID) })

		docs = append(docs, SponsorDoc{
			ID:                 s.SponsorID,
			CompanyName:        s.CompanyName,
			Industry:           s.Industry,
			Website:            s.Website,
			ContributionAmount: s.ContributionAmount,
			SupportedEvents:    events,
		})
	}
	slices.SortFunc(docs, func(a, b SponsorDoc) int { return cmp.Compare(a.ID, b.ID) })
	return docs
}

func buildVenues(rows []models.Venue, idx *index) []VenueDoc {
	docs := make([]VenueDoc, 0, len(rows))
	for _, v := range rows {
		hosted := idx.eventsByVenue[v.VenueID]
		events := make([]HostedEvent, 0, len(hosted))
		for _, e := range hosted {
			events = append(events, HostedEvent{
				EventID:         e.EventID,
				Name:            e.Name,
				StartDate:       e.StartDate,
				EndDate:         e.EndDate,
				EventType:       e.EventType,
				MaxParticipants: e.MaxParticipants,
			})
		}
		slices.SortFunc(events, func(a, b HostedEvent) int { return cmp.Compare(a.EventID, b.EventID) })

		docs = append(docs, VenueDoc{
			ID:         v.VenueID,
			Name:       v.Name,
			Address:    v.Address,
			Capacity:   v.Capacity,
			Facilities: v.Facilities,
			Events:     events,
		})
	}
	slices.SortFunc(docs, func(a, b VenueDoc) int { return cmp.Compare(a.ID, b.ID) })
	return docs
}
