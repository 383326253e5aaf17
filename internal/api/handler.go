package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/docstore"
	"github.com/sirdesai22/hackathon-docsync/internal/elastic"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/models"
	"github.com/sirdesai22/hackathon-docsync/internal/services"
)

type Migrator interface {
	Migrate(ctx context.Context) (*denorm.Result, error)
}

type DocStore interface {
	Stats(ctx context.Context) (*docstore.Stats, error)
	ListEvents(ctx context.Context) ([]denorm.EventDoc, error)
	ListParticipants(ctx context.Context) ([]denorm.ParticipantDoc, error)
	RegisterParticipant(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationDetails, error)
	CancelRegistration(ctx context.Context, personID, eventID int64) error
	Report(ctx context.Context, eventType string) ([]models.EventReport, error)
	Workshops(ctx context.Context, skillLevel string) ([]docstore.WorkshopRow, error)
}

type Relational interface {
	ListEvents(ctx context.Context) ([]services.EventRow, error)
	ListParticipants(ctx context.Context) ([]services.ParticipantRow, error)
	Stats(ctx context.Context) ([]models.EntityCount, error)
	Report(ctx context.Context, eventType string) ([]models.EventReport, error)
	RegisterParticipant(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationDetails, error)
	CancelRegistration(ctx context.Context, personID, eventID int64) error
	CreateSubmission(ctx context.Context, req models.SubmissionRequest) (*models.Submission, error)
	ListSubmissions(ctx context.Context) ([]services.SubmissionRow, error)
	GetSubmission(ctx context.Context, id int64) (*services.SubmissionRow, error)
	DeleteSubmission(ctx context.Context, id int64) error
	TeamCandidates(ctx context.Context) ([]services.ParticipantOption, error)
	ListRegistrations(ctx context.Context) ([]services.RegistrationRow, error)
	AvailableParticipants(ctx context.Context, eventID int64) ([]services.ParticipantOption, error)
}

type RunLister interface {
	List(ctx context.Context, limit int) ([]models.MigrationRun, error)
}

type EventSearcher interface {
	SearchEvents(ctx context.Context, q string, size int) ([]elastic.SearchHit, error)
}

// Handler serves both stores. Docs and Search may be nil when the
// corresponding backend is not connected.
type Handler struct {
	Migrator Migrator
	Docs     DocStore
	SQL      Relational
	Runs     RunLister
	Search   EventSearcher
}

const runsLimit = 100

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/nosql/migrate", h.migrate)
	mux.HandleFunc("GET /api/nosql/stats", h.docs(h.nosqlStats))
	mux.HandleFunc("GET /api/nosql/events", h.docs(h.nosqlEvents))
	mux.HandleFunc("GET /api/nosql/participants", h.docs(h.nosqlParticipants))
	mux.HandleFunc("POST /api/nosql/register", h.docs(h.nosqlRegister))
	mux.HandleFunc("DELETE /api/nosql/registrations/{personId}/{eventId}", h.docs(h.nosqlCancel))
	mux.HandleFunc("GET /api/nosql/report", h.docs(h.nosqlReport))
	mux.HandleFunc("GET /api/nosql/workshops", h.docs(h.nosqlWorkshops))

	mux.HandleFunc("GET /api/sql/events", h.sqlEvents)
	mux.HandleFunc("GET /api/sql/participants", h.sqlParticipants)
	mux.HandleFunc("GET /api/sql/stats", h.sqlStats)
	mux.HandleFunc("GET /api/sql/report", h.sqlReport)
	mux.HandleFunc("POST /api/sql/register", h.sqlRegister)
	mux.HandleFunc("DELETE /api/sql/registrations/{personId}/{eventId}", h.sqlCancel)
	mux.HandleFunc("GET /api/sql/registrations", h.sqlRegistrations)
	mux.HandleFunc("GET /api/sql/registrations/available-participants/{eventId}", h.sqlAvailableParticipants)
	mux.HandleFunc("GET /api/sql/submissions", h.sqlSubmissions)
	mux.HandleFunc("GET /api/sql/submissions/participants", h.sqlTeamCandidates)
	mux.HandleFunc("GET /api/sql/submissions/{id}", h.sqlSubmission)
	mux.HandleFunc("POST /api/sql/submissions", h.sqlCreateSubmission)
	mux.HandleFunc("DELETE /api/sql/submissions/{id}", h.sqlDeleteSubmission)

	mux.HandleFunc("GET /api/migrations", h.listRuns)
	mux.HandleFunc("GET /api/search/events", h.searchEvents)
}

// docs rejects the request with 503 while no document store is connected.
func (h *Handler) docs(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.Docs == nil {
			writeError(w, r, apperrors.ErrDocStoreUnavailable)
			return
		}
		next(w, r)
	}
}

func (h *Handler) migrate(w http.ResponseWriter, r *http.Request) {
	res, err := h.Migrator.Migrate(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Migration completed successfully",
		"stats":   res.Stats,
	})
}

// ---------------- document store ----------------

func (h *Handler) nosqlStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Docs.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *Handler) nosqlEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Docs.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, events)
}

func (h *Handler) nosqlParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.Docs.ListParticipants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, participants)
}

func (h *Handler) nosqlRegister(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Docs.RegisterParticipant)
}

func (h *Handler) nosqlCancel(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, h.Docs.CancelRegistration)
}

func (h *Handler) nosqlReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Docs.Report(r.Context(), r.URL.Query().Get("eventType"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (h *Handler) nosqlWorkshops(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Docs.Workshops(r.Context(), r.URL.Query().Get("skillLevel"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

// ---------------- relational store ----------------

func (h *Handler) sqlEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.SQL.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, events)
}

func (h *Handler) sqlParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.SQL.ListParticipants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, participants)
}

func (h *Handler) sqlStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.SQL.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *Handler) sqlReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.SQL.Report(r.Context(), r.URL.Query().Get("eventType"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (h *Handler) sqlRegister(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.SQL.RegisterParticipant)
}

func (h *Handler) sqlCancel(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, h.SQL.CancelRegistration)
}

func (h *Handler) sqlCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.SubmissionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := h.SQL.CreateSubmission(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, sub)
}

func (h *Handler) sqlRegistrations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.SQL.ListRegistrations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (h *Handler) sqlAvailableParticipants(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.SQL.AvailableParticipants(r.Context(), eventID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (h *Handler) sqlSubmissions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.SQL.ListSubmissions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (h *Handler) sqlTeamCandidates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.SQL.TeamCandidates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (h *Handler) sqlSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	row, err := h.SQL.GetSubmission(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, row)
}

func (h *Handler) sqlDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.SQL.DeleteSubmission(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Submission deleted"})
}

// ---------------- shared ----------------

type registerFunc func(context.Context, models.RegistrationRequest) (*models.RegistrationDetails, error)

type cancelFunc func(ctx context.Context, personID, eventID int64) error

func (h *Handler) register(w http.ResponseWriter, r *http.Request, fn registerFunc) {
	var req models.RegistrationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	details, err := fn(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"message":      "Registration successful",
		"registration": details,
	})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request, fn cancelFunc) {
	personID, err := pathID(r, "personId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := fn(r.Context(), personID, eventID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Registration cancelled"})
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Runs.List(r.Context(), runsLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, runs)
}

func (h *Handler) searchEvents(w http.ResponseWriter, r *http.Request) {
	if h.Search == nil {
		writeError(w, r, apperrors.ErrSearchDisabled)
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, fmt.Errorf("%w: q is required", apperrors.ErrBadRequest))
		return
	}
	size := 10
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, fmt.Errorf("%w: size must be between 1 and 100", apperrors.ErrBadRequest))
			return
		}
		size = n
	}
	hits, err := h.Search.SearchEvents(r.Context(), q, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, hits)
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", apperrors.ErrBadRequest, name)
	}
	return id, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LogRequests logs one line per request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}
