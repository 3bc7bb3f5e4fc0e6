package reminderworker

import (
	"context"
	"log/slog"
	"time"

	"github.com/stefanv/moneta/internal/infrastructure/metrics"
)

// Sender dispatches every due reminder and reports how many went out.
type Sender interface {
	SendDue(ctx context.Context, now time.Time) (int, error)
}

// Worker periodically sends due reminder emails.
type Worker struct {
	sender   Sender
	logger   *slog.Logger
	metrics  *metrics.Metrics
	interval time.Duration
	now      func() time.Time
}

// Config for Worker.
type Config struct {
	Sender   Sender
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Interval time.Duration
	Now      func() time.Time // defaults to time.Now
}

// New creates a new Worker.
func New(cfg Config) *Worker {
	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Worker{
		sender:   cfg.Sender,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		interval: cfg.Interval,
		now:      cfg.Now,
	}
}

// Start begins the reminder worker.
// It runs continuously until the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("reminder worker started",
		slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Process immediately on start
	w.process(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.process(ctx)
		}
	}
}

func (w *Worker) process(ctx context.Context) {
	sent, err := w.sender.SendDue(ctx, w.now())

	if w.metrics != nil && sent > 0 {
		w.metrics.ReminderEmails.WithLabelValues("sent").Add(float64(sent))
	}

	if err != nil {
		if w.metrics != nil {
			w.metrics.ReminderEmails.WithLabelValues("failed").Inc()
		}
		w.logger.Error("error sending due reminders", slog.String("error", err.Error()))
		return
	}

	if sent > 0 {
		w.logger.Info("due reminders sent", slog.Int("count", sent))
	}
}
