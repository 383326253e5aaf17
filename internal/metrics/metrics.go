package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Migrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "docsync_migrations_total", Help: "Migration runs by outcome"},
		[]string{"status"},
	)
	MigrationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "docsync_migration_duration_seconds", Help: "Wall time of successful migrations"},
	)
	DocumentsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "docsync_documents_written_total", Help: "Documents inserted per collection"},
		[]string{"collection"},
	)
	ReferentialWarnings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "docsync_referential_warnings_total", Help: "Dangling references met while transforming"},
		[]string{"kind"},
	)
	CleanupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "docsync_cleanup_failures_total", Help: "Swallowed best-effort cleanup failures"},
	)
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "docsync_registrations_total", Help: "Register-participant outcomes per store"},
		[]string{"store", "outcome"},
	)
	MirroredDocuments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "docsync_search_mirror_documents_total", Help: "Search mirror bulk results"},
		[]string{"result"},
	)
)

func Register() {
	prometheus.MustRegister(
		Migrations, MigrationDuration, DocumentsWritten, ReferentialWarnings,
		CleanupFailures, Registrations, MirroredDocuments,
	)
}
