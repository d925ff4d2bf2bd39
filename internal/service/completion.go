package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/2akonsultant/GoodnessGlamour/internal/metrics"
	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

// Sink persists confirmed bookings.
type Sink interface {
	Save(ctx context.Context, b models.FinalizedBooking) error
}

// Notifier delivers a text message to a phone number.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// Enricher adds derived data to a booking before it is stored.
type Enricher interface {
	Enrich(ctx context.Context, b models.FinalizedBooking) (models.FinalizedBooking, error)
}

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 256
	DefaultTimeout   = 30 * time.Second
)

// Completer runs the side effects of a confirmed booking off the request path:
// enrich, persist, then notify the customer and the salon. Failures are logged
// and counted but never reach the customer.
type Completer struct {
	Sink        Sink
	Notifier    Notifier
	Enricher    Enricher
	SalonNumber string
	Timeout     time.Duration
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger

	mu     sync.RWMutex
	queue  chan models.FinalizedBooking
	closed bool
	wg     conc.WaitGroup
}

// Start launches the worker pool. It must be called once before Submit.
func (c *Completer) Start(workers, queueSize int) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	c.queue = make(chan models.FinalizedBooking, queueSize)
	for i := 0; i < workers; i++ {
		c.wg.Go(c.work)
	}
}

// Submit queues b without blocking. When the queue is full or the completer is
// stopped the booking is dropped from the side-effect path and logged.
func (c *Completer) Submit(b models.FinalizedBooking) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.queue == nil {
		c.drop(b, "completer not running")
		return
	}
	select {
	case c.queue <- b:
	default:
		c.drop(b, "completion queue full")
	}
}

func (c *Completer) drop(b models.FinalizedBooking, reason string) {
	c.Metrics.CompletionDropped()
	c.Logger.Error().
		Str("booking_id", b.BookingID).
		Str("phone", b.Phone).
		Str("service", b.Service).
		Str("date", b.Date).
		Str("time", b.Time).
		Msg(reason)
}

// Close stops accepting bookings and waits for queued ones to finish.
func (c *Completer) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.queue != nil {
		close(c.queue)
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Completer) work() {
	for b := range c.queue {
		c.run(b)
	}
}

func (c *Completer) run(b models.FinalizedBooking) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var pc panics.Catcher
	pc.Try(func() {
		if err := c.Complete(ctx, b); err != nil {
			c.Logger.Warn().Err(err).Str("booking_id", b.BookingID).Msg("booking completed with errors")
		}
	})
	if r := pc.Recovered(); r != nil {
		c.Metrics.CompletionError("panic")
		c.Logger.Error().Err(r.AsError()).Str("booking_id", b.BookingID).Msg("booking completion panicked")
	}
}

// Complete runs the pipeline for one booking synchronously. Every stage is
// attempted; the returned error joins the stages that failed.
func (c *Completer) Complete(ctx context.Context, b models.FinalizedBooking) error {
	var errs []error

	if c.Enricher != nil {
		enriched, err := c.Enricher.Enrich(ctx, b)
		if err != nil {
			c.Metrics.CompletionError("geocode")
			c.Logger.Warn().Err(err).Str("booking_id", b.BookingID).Msg("address lookup failed")
		} else {
			b = enriched
		}
	}

	if c.Sink != nil {
		if err := c.Sink.Save(ctx, b); err != nil {
			c.Metrics.CompletionError("save")
			c.Logger.Error().Err(err).Str("booking_id", b.BookingID).Msg("booking save failed")
			errs = append(errs, fmt.Errorf("save: %w", err))
		} else {
			c.Logger.Info().Str("booking_id", b.BookingID).Msg("booking saved")
		}
	}

	if c.Notifier != nil {
		if b.Phone != "" {
			err := c.Notifier.Send(ctx, b.Phone, CustomerMessage(b))
			c.Metrics.Notification("customer", err)
			if err != nil {
				c.Logger.Error().Err(err).Str("booking_id", b.BookingID).Msg("customer sms failed")
				errs = append(errs, fmt.Errorf("customer sms: %w", err))
			}
		}
		if c.SalonNumber != "" {
			err := c.Notifier.Send(ctx, c.SalonNumber, SalonAlert(b))
			c.Metrics.Notification("salon", err)
			if err != nil {
				c.Logger.Warn().Err(err).Str("booking_id", b.BookingID).Msg("salon alert failed")
				errs = append(errs, fmt.Errorf("salon alert: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}
