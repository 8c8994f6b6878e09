package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultArchiveDelay is how long a closed order stays visible before the
// job tucks it away.
const DefaultArchiveDelay = 60 * time.Second

// ClosedOrderSource lists the closed orders that still await archival.
type ClosedOrderSource interface {
	GetClosedUnarchived(ctx context.Context) ([]*order.Order, error)
}

// OrderArchiver executes the archival of a single order.
type OrderArchiver interface {
	Handle(ctx context.Context, cmd commands.AutoArchiveOrderCommand) error
}

// OrderArchiveJob archives closed orders a fixed delay after they close.
// A periodic scan picks up closed orders and arms one timer per order id;
// orders already past the delay are archived on discovery, so the job
// catches up after a restart. The archive write itself is idempotent, so a
// timer racing a manual archive is harmless.
type OrderArchiveJob struct {
	source   ClosedOrderSource
	archiver OrderArchiver
	delay    time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight map[kernel.UUID]*time.Timer
}

// NewOrderArchiveJob creates the auto-archive job.
func NewOrderArchiveJob(
	source ClosedOrderSource,
	archiver OrderArchiver,
	delay time.Duration,
	logger *slog.Logger,
) *OrderArchiveJob {
	return &OrderArchiveJob{
		source:   source,
		archiver: archiver,
		delay:    delay,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_archive_job"),
		inFlight: make(map[kernel.UUID]*time.Timer),
	}
}

// Start begins scanning for closed orders every five seconds.
func (j *OrderArchiveJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		j.scan(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order archive job started",
		"delay", j.delay.String())
	return nil
}

// Stop stops the scan and cancels pending timers.
func (j *OrderArchiveJob) Stop() {
	j.cron.Stop()

	j.mu.Lock()
	for id, timer := range j.inFlight {
		timer.Stop()
		delete(j.inFlight, id)
	}
	j.mu.Unlock()

	j.logger.InfoContext(context.Background(), "Order archive job stopped")
}

// scan archives overdue orders and arms timers for the rest. At most one
// timer per order id is in flight at a time.
func (j *OrderArchiveJob) scan(ctx context.Context) {
	pending, err := j.source.GetClosedUnarchived(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order archive scan failed", "error", err)
		return
	}

	now := time.Now()
	for _, o := range pending {
		closedAt := o.ClosedAt()
		if closedAt == nil {
			continue
		}

		due := closedAt.Add(j.delay)
		if !now.Before(due) {
			j.archive(ctx, o.ID())
			continue
		}

		j.arm(o.ID(), due.Sub(now))
	}
}

func (j *OrderArchiveJob) arm(id kernel.UUID, wait time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, armed := j.inFlight[id]; armed {
		return
	}

	j.inFlight[id] = time.AfterFunc(wait, func() {
		j.mu.Lock()
		delete(j.inFlight, id)
		j.mu.Unlock()

		j.archive(context.Background(), id)
	})
}

func (j *OrderArchiveJob) archive(ctx context.Context, id kernel.UUID) {
	cmd, err := commands.NewAutoArchiveOrderCommand(id)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid auto-archive command", "orderId", id.String(), "error", err)
		return
	}

	if err := j.archiver.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Order archival failed", "orderId", id.String(), "error", err)
	}
}
