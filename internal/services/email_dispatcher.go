package services

import (
	"context"
	"log/slog"
	"time"
)

// EmailDispatcher delivers queued emails after a delay. Enqueue is
// fire-and-forget: dispatch failures are logged and never surface to the
// request that queued the message.
type EmailDispatcher struct {
	svc    EmailService
	logger *slog.Logger
	jobs   chan emailJob
	stopCh chan struct{}
}

type emailJob struct {
	email string
	due   time.Time
}

// NewEmailDispatcher creates a new EmailDispatcher
func NewEmailDispatcher(svc EmailService, logger *slog.Logger) *EmailDispatcher {
	return &EmailDispatcher{
		svc:    svc,
		logger: logger,
		jobs:   make(chan emailJob, 256),
		stopCh: make(chan struct{}),
	}
}

// Enqueue schedules an email for delivery after the given delay. If the
// queue is full the message is dropped and logged; the caller is not blocked.
func (d *EmailDispatcher) Enqueue(email string, delay time.Duration) {
	job := emailJob{email: email, due: time.Now().Add(delay)}

	select {
	case d.jobs <- job:
	default:
		d.logger.Warn("email queue full, dropping message", slog.String("email", email))
	}
}

// Start runs the delivery loop until Stop is called or the context ends
func (d *EmailDispatcher) Start(ctx context.Context) {
	for {
		select {
		case job := <-d.jobs:
			d.deliver(ctx, job)
		case <-d.stopCh:
			d.logger.Info("email dispatcher stopped")
			return
		case <-ctx.Done():
			d.logger.Info("email dispatcher context cancelled")
			return
		}
	}
}

// deliver waits out the job's delay, then sends. Pending delay is abandoned
// on shutdown.
func (d *EmailDispatcher) deliver(ctx context.Context, job emailJob) {
	if wait := time.Until(job.due); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-d.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := d.svc.SendWelcomeEmail(sendCtx, job.email); err != nil {
		d.logger.Error("failed to deliver queued email",
			slog.String("email", job.email),
			slog.Any("error", err))
	}
}

// Stop signals the dispatcher to stop
func (d *EmailDispatcher) Stop() {
	close(d.stopCh)
}
