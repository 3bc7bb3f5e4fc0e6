package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated prometheus.Counter
	EntriesUpdated prometheus.Counter
	EntriesDeleted prometheus.Counter
	EntryAmount    *prometheus.HistogramVec

	// Goal metrics
	GoalsCreated prometheus.Counter
	GoalsDeleted prometheus.Counter

	// Reminder metrics
	RemindersCreated prometheus.Counter
	ReminderEmails   *prometheus.CounterVec

	// Dashboard metrics
	DashboardSnapshots prometheus.Counter
	DashboardWatchers  prometheus.Gauge

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Settings metrics
	SettingsChanges *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_entries_created_total",
			Help: "Total number of entries recorded",
		}),
		EntriesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_entries_updated_total",
			Help: "Total number of entries updated",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_entries_deleted_total",
			Help: "Total number of entries deleted",
		}),
		EntryAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneta_entry_amount",
				Help:    "Entry amounts in the entry's own currency",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"type", "currency"},
		),

		GoalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_goals_created_total",
			Help: "Total number of goals created",
		}),
		GoalsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_goals_deleted_total",
			Help: "Total number of goals deleted",
		}),

		RemindersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_reminders_created_total",
			Help: "Total number of reminders created",
		}),
		ReminderEmails: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_reminder_emails_total",
				Help: "Total reminder emails by outcome",
			},
			[]string{"status"},
		),

		DashboardSnapshots: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_dashboard_snapshots_total",
			Help: "Total number of one-shot dashboard snapshots served",
		}),
		DashboardWatchers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "moneta_dashboard_watchers",
			Help: "Current number of live dashboard streams",
		}),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		SettingsChanges: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_settings_changes_total",
				Help: "Total settings changes by kind",
			},
			[]string{"kind"},
		),
	}
}
