package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event kinds dispatched by the booking engine and the reminder job
const (
	KindBookingConfirmed = "booking.confirmed"
	KindBookingCancelled = "booking.cancelled"
	KindBookingReminder  = "booking.reminder"
)

// Event carries enough data to format one user notification
type Event struct {
	Kind    string
	UserID  string
	Email   string
	Name    string
	Subject string
	Message string
}

// Sink delivers a formatted notification. Swappable for Email/SMS later.
type Sink interface {
	Deliver(event Event) error
}

// LogSink writes notifications to the structured log
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.With(zap.String("sink", "log"))}
}

func (s *LogSink) Deliver(event Event) error {
	s.log.Info("Notification delivered",
		zap.String("kind", event.Kind),
		zap.String("user_id", event.UserID),
		zap.String("email", event.Email),
		zap.String("subject", event.Subject),
		zap.String("message", event.Message),
	)
	return nil
}

// Dispatcher is a bounded fire-and-forget queue. Enqueue never blocks a
// request handler; delivery failures are logged by the workers.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	log   *zap.Logger
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sink Sink, workers, queueSize int, log *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}

	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		log:   log.With(zap.String("component", "notify")),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for event := range d.queue {
		if err := d.sink.Deliver(event); err != nil {
			d.log.Error("Failed to deliver notification",
				zap.Error(err),
				zap.String("kind", event.Kind),
				zap.String("user_id", event.UserID),
			)
		}
	}
}

// Enqueue queues an event for delivery. When the queue is full the event is
// dropped with a warning rather than blocking the caller.
func (d *Dispatcher) Enqueue(event Event) {
	select {
	case d.queue <- event:
	default:
		d.log.Warn("Notification queue full, dropping event",
			zap.String("kind", event.Kind),
			zap.String("user_id", event.UserID),
		)
	}
}

// Shutdown drains the queue and stops the workers
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.once.Do(func() { close(d.queue) })

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.log.Warn("Notification dispatcher shutdown timed out")
	}
}
