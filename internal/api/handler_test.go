package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/docstore"
	"github.com/sirdesai22/hackathon-docsync/internal/elastic"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"github.com/sirdesai22/hackathon-docsync/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	res *denorm.Result
	err error
}

func (f *fakeMigrator) Migrate(context.Context) (*denorm.Result, error) { return f.res, f.err }

// fakeStore implements both DocStore and Relational.
type fakeStore struct {
	err         error
	lastReq     models.RegistrationRequest
	lastCancel  [2]int64
	lastFilter  string
	lastSubmit  models.SubmissionRequest
	registerErr error
}

func (f *fakeStore) Stats(context.Context) (*docstore.Stats, error) {
	return &docstore.Stats{
		Collections:       []models.EntityCount{{Entity: "Events", Count: 2}},
		EmbeddedWorkshops: 3,
	}, f.err
}

func (f *fakeStore) ListEvents(context.Context) ([]denorm.EventDoc, error) {
	return []denorm.EventDoc{{ID: 100, Name: "AI Innovation Hackathon"}}, f.err
}

func (f *fakeStore) ListParticipants(context.Context) ([]denorm.ParticipantDoc, error) {
	return []denorm.ParticipantDoc{{ID: 1}}, f.err
}

func (f *fakeStore) RegisterParticipant(_ context.Context, req models.RegistrationRequest) (*models.RegistrationDetails, error) {
	f.lastReq = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.RegistrationDetails{PersonID: req.PersonID, EventID: req.EventID, RegistrationNumber: "REG-1"}, nil
}

func (f *fakeStore) CancelRegistration(_ context.Context, personID, eventID int64) error {
	f.lastCancel = [2]int64{personID, eventID}
	return f.err
}

func (f *fakeStore) Report(_ context.Context, eventType string) ([]models.EventReport, error) {
	f.lastFilter = eventType
	return []models.EventReport{{EventID: 100, CapacityPercentage: 50}}, f.err
}

func (f *fakeStore) Workshops(_ context.Context, skillLevel string) ([]docstore.WorkshopRow, error) {
	f.lastFilter = skillLevel
	return []docstore.WorkshopRow{{EventID: 100}}, f.err
}

type fakeSQL struct {
	fakeStore
	lastID int64
}

func (f *fakeSQL) ListEvents(context.Context) ([]services.EventRow, error) {
	return []services.EventRow{{EventID: 100}}, f.err
}

func (f *fakeSQL) ListParticipants(context.Context) ([]services.ParticipantRow, error) {
	return []services.ParticipantRow{{PersonID: 1}}, f.err
}

func (f *fakeSQL) Stats(context.Context) ([]models.EntityCount, error) {
	return []models.EntityCount{{Entity: "Person", Count: 4}}, f.err
}

func (f *fakeSQL) CreateSubmission(_ context.Context, req models.SubmissionRequest) (*models.Submission, error) {
	f.lastSubmit = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Submission{SubmissionID: 501, ProjectName: req.ProjectName}, nil
}

func (f *fakeSQL) ListSubmissions(context.Context) ([]services.SubmissionRow, error) {
	return []services.SubmissionRow{{SubmissionID: 500, TeamMembers: "Anna Mueller, Felix Weber"}}, f.err
}

func (f *fakeSQL) GetSubmission(_ context.Context, id int64) (*services.SubmissionRow, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &services.SubmissionRow{SubmissionID: id, TeamMemberIDs: []int64{1, 2}}, nil
}

func (f *fakeSQL) DeleteSubmission(_ context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeSQL) TeamCandidates(context.Context) ([]services.ParticipantOption, error) {
	return []services.ParticipantOption{{PersonID: 3}, {PersonID: 1}}, f.err
}

func (f *fakeSQL) ListRegistrations(context.Context) ([]services.RegistrationRow, error) {
	return []services.RegistrationRow{{PersonID: 1, EventID: 100}}, f.err
}

func (f *fakeSQL) AvailableParticipants(_ context.Context, eventID int64) ([]services.ParticipantOption, error) {
	f.lastID = eventID
	return []services.ParticipantOption{{PersonID: 2}}, f.err
}

type fakeRunList struct{ limit int }

func (f *fakeRunList) List(_ context.Context, limit int) ([]models.MigrationRun, error) {
	f.limit = limit
	return []models.MigrationRun{{Status: models.RunSucceeded}}, nil
}

type fakeSearch struct {
	q    string
	size int
}

func (f *fakeSearch) SearchEvents(_ context.Context, q string, size int) ([]elastic.SearchHit, error) {
	f.q, f.size = q, size
	return []elastic.SearchHit{{Score: 1.5, Event: elastic.EventDoc{EventID: 100}}}, nil
}

func newServer(h *Handler) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	return LogRequests(mux)
}

func do(t *testing.T, srv http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.ErrDocStoreUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: dial tcp", apperrors.ErrDocStoreUnavailable), http.StatusServiceUnavailable},
		{apperrors.ErrSearchDisabled, http.StatusServiceUnavailable},
		{apperrors.ErrParticipantNotFound, http.StatusNotFound},
		{apperrors.ErrEventNotFound, http.StatusNotFound},
		{apperrors.ErrRegistrationNotFound, http.StatusNotFound},
		{apperrors.ErrSubmissionNotFound, http.StatusNotFound},
		{apperrors.ErrAlreadyRegistered, http.StatusConflict},
		{apperrors.ErrEventFull, http.StatusConflict},
		{apperrors.ErrInvalidTicketType, http.StatusBadRequest},
		{apperrors.ErrBadRequest, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestMigrateEndpoint(t *testing.T) {
	res := &denorm.Result{Stats: denorm.Stats{Participants: 3, Events: 2}}
	srv := newServer(&Handler{Migrator: &fakeMigrator{res: res}})

	rec, body := do(t, srv, http.MethodPost, "/api/nosql/migrate", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Migration completed successfully", body["message"])
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 3, stats["participants"])
	assert.EqualValues(t, 2, stats["events"])
}

func TestMigrateEndpointWithoutDocStore(t *testing.T) {
	srv := newServer(&Handler{Migrator: &fakeMigrator{err: apperrors.ErrDocStoreUnavailable}})

	rec, body := do(t, srv, http.MethodPost, "/api/nosql/migrate", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, apperrors.ErrDocStoreUnavailable.Error(), body["error"])
}

func TestMigrateRequiresPost(t *testing.T) {
	srv := newServer(&Handler{Migrator: &fakeMigrator{}})

	rec, _ := do(t, srv, http.MethodGet, "/api/nosql/migrate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNoSQLRoutesWithoutDocStore(t *testing.T) {
	srv := newServer(&Handler{})
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nosql/stats"},
		{http.MethodGet, "/api/nosql/events"},
		{http.MethodGet, "/api/nosql/participants"},
		{http.MethodPost, "/api/nosql/register"},
		{http.MethodDelete, "/api/nosql/registrations/1/100"},
		{http.MethodGet, "/api/nosql/report"},
		{http.MethodGet, "/api/nosql/workshops"},
	} {
		rec, body := do(t, srv, tc.method, tc.path, "{}")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, tc.path)
		assert.Equal(t, false, body["success"], tc.path)
	}
}

func TestNoSQLStats(t *testing.T) {
	srv := newServer(&Handler{Docs: &fakeStore{}})

	rec, body := do(t, srv, http.MethodGet, "/api/nosql/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 3, data["workshops_embedded"])
	assert.Len(t, data["collections"], 1)
}

func TestNoSQLRegister(t *testing.T) {
	docs := &fakeStore{}
	srv := newServer(&Handler{Docs: docs})

	rec, body := do(t, srv, http.MethodPost, "/api/nosql/register",
		`{"personId":2,"eventId":100,"ticketType":"VIP"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "REG-1", body["registration"].(map[string]any)["registration_number"])
	assert.Equal(t, models.RegistrationRequest{PersonID: 2, EventID: 100, TicketType: "VIP"}, docs.lastReq)
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"malformed json", `{"personId":`, nil, http.StatusBadRequest},
		{"unknown field", `{"personId":1,"eventId":100,"seat":"A1"}`, nil, http.StatusBadRequest},
		{"invalid ticket", `{"personId":1,"eventId":100,"ticketType":"Gold"}`, apperrors.ErrInvalidTicketType, http.StatusBadRequest},
		{"unknown participant", `{"personId":9,"eventId":100,"ticketType":"VIP"}`, apperrors.ErrParticipantNotFound, http.StatusNotFound},
		{"duplicate", `{"personId":1,"eventId":100,"ticketType":"VIP"}`, apperrors.ErrAlreadyRegistered, http.StatusConflict},
		{"full", `{"personId":3,"eventId":100,"ticketType":"VIP"}`, apperrors.ErrEventFull, http.StatusConflict},
		{"store failure", `{"personId":3,"eventId":100,"ticketType":"VIP"}`, errors.New("timeout"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(&Handler{SQL: &fakeSQL{fakeStore: fakeStore{registerErr: tt.err}}})

			rec, body := do(t, srv, http.MethodPost, "/api/sql/register", tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCancelRegistration(t *testing.T) {
	docs := &fakeStore{}
	srv := newServer(&Handler{Docs: docs})

	rec, body := do(t, srv, http.MethodDelete, "/api/nosql/registrations/3/101", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, [2]int64{3, 101}, docs.lastCancel)

	rec, _ = do(t, srv, http.MethodDelete, "/api/nosql/registrations/abc/101", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, srv, http.MethodDelete, "/api/nosql/registrations/3/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sql := &fakeSQL{fakeStore: fakeStore{err: apperrors.ErrRegistrationNotFound}}
	srv = newServer(&Handler{SQL: sql})
	rec, _ = do(t, srv, http.MethodDelete, "/api/sql/registrations/2/100", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, [2]int64{2, 100}, sql.lastCancel)
}

func TestReportFilters(t *testing.T) {
	docs := &fakeStore{}
	sql := &fakeSQL{}
	srv := newServer(&Handler{Docs: docs, SQL: sql})

	rec, body := do(t, srv, http.MethodGet, "/api/nosql/report?eventType=Hackathon", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hackathon", docs.lastFilter)
	row := body["data"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 50, row["capacity_percentage"])

	rec, _ = do(t, srv, http.MethodGet, "/api/sql/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sql.lastFilter)

	rec, _ = do(t, srv, http.MethodGet, "/api/nosql/workshops?skillLevel=Beginner", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beginner", docs.lastFilter)
}

func TestSQLListings(t *testing.T) {
	srv := newServer(&Handler{SQL: &fakeSQL{}})

	for _, path := range []string{"/api/sql/events", "/api/sql/participants", "/api/sql/stats"} {
		rec, body := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Len(t, body["data"], 1, path)
	}
}

func TestCreateSubmission(t *testing.T) {
	sql := &fakeSQL{}
	srv := newServer(&Handler{SQL: sql})

	rec, body := do(t, srv, http.MethodPost, "/api/sql/submissions",
		`{"project_name":"Carbon Tracker","technology_stack":"Go","repository_url":"https://github.com/example/carbon","event_id":101,"team_member_ids":[1,3]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 501, body["data"].(map[string]any)["submission_id"])
	assert.Equal(t, []int64{1, 3}, sql.lastSubmit.TeamMemberIDs)
	require.NotNil(t, sql.lastSubmit.EventID)
	assert.EqualValues(t, 101, *sql.lastSubmit.EventID)

	sql.err = apperrors.ErrEventNotFound
	rec, _ = do(t, srv, http.MethodPost, "/api/sql/submissions", `{"project_name":"X","event_id":999,"team_member_ids":[1]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRuns(t *testing.T) {
	runs := &fakeRunList{}
	srv := newServer(&Handler{Runs: runs})

	rec, body := do(t, srv, http.MethodGet, "/api/migrations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, runsLimit, runs.limit)
	assert.Len(t, body["data"], 1)
}

func TestSearchEvents(t *testing.T) {
	rec, _ := do(t, newServer(&Handler{}), http.MethodGet, "/api/search/events?q=ai", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	search := &fakeSearch{}
	srv := newServer(&Handler{Search: search})

	rec, body := do(t, srv, http.MethodGet, "/api/search/events?q=+ai+", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ai", search.q)
	assert.Equal(t, 10, search.size)
	assert.Len(t, body["data"], 1)

	_, _ = do(t, srv, http.MethodGet, "/api/search/events?q=ai&size=5", "")
	assert.Equal(t, 5, search.size)

	for _, target := range []string{"/api/search/events", "/api/search/events?q=ai&size=0", "/api/search/events?q=ai&size=x"} {
		rec, _ := do(t, srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestSQLSubmissionRoutes(t *testing.T) {
	sql := &fakeSQL{}
	srv := newServer(&Handler{SQL: sql})

	rec, body := do(t, srv, http.MethodGet, "/api/sql/submissions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Anna Mueller, Felix Weber", rows[0].(map[string]any)["team_members"])

	rec, body = do(t, srv, http.MethodGet, "/api/sql/submissions/participants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"], 2)

	rec, body = do(t, srv, http.MethodGet, "/api/sql/submissions/500", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(500), sql.lastID)
	assert.Len(t, body["data"].(map[string]any)["team_member_ids"], 2)

	rec, body = do(t, srv, http.MethodDelete, "/api/sql/submissions/500", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, _ = do(t, srv, http.MethodGet, "/api/sql/submissions/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sql.err = apperrors.ErrSubmissionNotFound
	rec, body = do(t, srv, http.MethodGet, "/api/sql/submissions/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.ErrSubmissionNotFound.Error(), body["error"])

	rec, _ = do(t, srv, http.MethodDelete, "/api/sql/submissions/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int64(999), sql.lastID)
}

func TestSQLRegistrationRoutes(t *testing.T) {
	sql := &fakeSQL{}
	srv := newServer(&Handler{SQL: sql})

	rec, body := do(t, srv, http.MethodGet, "/api/sql/registrations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"], 1)

	rec, body = do(t, srv, http.MethodGet, "/api/sql/registrations/available-participants/101", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(101), sql.lastID)
	assert.Len(t, body["data"], 1)

	rec, _ = do(t, srv, http.MethodGet, "/api/sql/registrations/available-participants/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sql.err = apperrors.ErrEventNotFound
	rec, _ = do(t, srv, http.MethodGet, "/api/sql/registrations/available-participants/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
