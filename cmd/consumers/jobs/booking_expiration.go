package jobs

import (
	"context"
	"log/slog"
	"time"

	"skybook/internal/service"
)

const checkInterval = 30 * time.Second

// BookingExpirationJob cancels unpaid Pending bookings after the payment
// window, returning their seats to inventory.
type BookingExpirationJob struct {
	bookings *service.BookingService
	maxAge   time.Duration
	ticker   *time.Ticker
	done     chan bool
}

func NewBookingExpirationJob(bookings *service.BookingService, maxAge time.Duration) *BookingExpirationJob {
	return &BookingExpirationJob{
		bookings: bookings,
		maxAge:   maxAge,
		done:     make(chan bool),
	}
}

// Start begins the periodic expiration sweep.
func (j *BookingExpirationJob) Start(ctx context.Context) {
	slog.Info("Starting booking expiration job",
		"check_interval", checkInterval.String(),
		"payment_window", j.maxAge.String())

	j.ticker = time.NewTicker(checkInterval)

	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				j.sweep(ctx)
			case <-j.done:
				slog.Info("Booking expiration job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the job.
func (j *BookingExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *BookingExpirationJob) sweep(ctx context.Context) {
	count, err := j.bookings.ExpirePending(ctx, j.maxAge)
	if err != nil {
		slog.Error("Expiration sweep failed", "error", err)
		return
	}

	if count > 0 {
		slog.Info("Expired unpaid bookings", "count", count)
	}
}
