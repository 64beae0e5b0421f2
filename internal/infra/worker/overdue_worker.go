package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// OverdueMarker is implemented by usecase.InvoiceUseCase.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// OverdueWorker periodically flags sent invoices whose due date has passed.
type OverdueWorker struct {
	invoices OverdueMarker
	schedule string
	timeout  time.Duration
	now      func() time.Time
	log      *logrus.Entry
}

func NewOverdueWorker(invoices OverdueMarker, schedule string, log *logrus.Logger) *OverdueWorker {
	return &OverdueWorker{
		invoices: invoices,
		schedule: schedule,
		timeout:  30 * time.Second,
		now:      time.Now,
		log:      log.WithField("worker", "overdue-sweep"),
	}
}

// Start runs one sweep immediately, then follows the cron schedule until ctx
// is cancelled.
func (w *OverdueWorker) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(w.schedule, func() { w.Sweep(ctx) }); err != nil {
		return fmt.Errorf("schedule overdue sweep %q: %w", w.schedule, err)
	}

	w.log.WithField("schedule", w.schedule).Info("overdue sweep started")
	w.Sweep(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	w.log.Info("overdue sweep stopped")
	return nil
}

// Sweep marks overdue invoices once and returns how many changed.
func (w *OverdueWorker) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	n, err := w.invoices.MarkOverdue(ctx, w.now())
	if err != nil {
		w.log.WithError(err).Error("overdue sweep failed")
		return n
	}
	if n > 0 {
		w.log.WithField("count", n).Info("invoices marked overdue")
	}
	return n
}
