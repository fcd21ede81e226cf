package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type captureEmailService struct {
	mu   sync.Mutex
	sent []string
	ch   chan string
}

func newCaptureEmailService() *captureEmailService {
	return &captureEmailService{ch: make(chan string, 16)}
}

func (c *captureEmailService) SendWelcomeEmail(ctx context.Context, email string) error {
	c.mu.Lock()
	c.sent = append(c.sent, email)
	c.mu.Unlock()
	c.ch <- email
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmailDispatcher_DeliversAfterDelay(t *testing.T) {
	svc := newCaptureEmailService()
	dispatcher := NewEmailDispatcher(svc, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Start(ctx)
	defer dispatcher.Stop()

	dispatcher.Enqueue("user@example.com", 10*time.Millisecond)

	select {
	case email := <-svc.ch:
		assert.Equal(t, "user@example.com", email)
	case <-time.After(2 * time.Second):
		t.Fatal("email was not delivered")
	}
}

func TestEmailDispatcher_DeliversInOrder(t *testing.T) {
	svc := newCaptureEmailService()
	dispatcher := NewEmailDispatcher(svc, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Start(ctx)
	defer dispatcher.Stop()

	dispatcher.Enqueue("first@example.com", 0)
	dispatcher.Enqueue("second@example.com", 0)

	var got []string
	for i := 0; i < 2; i++ {
		select {
		case email := <-svc.ch:
			got = append(got, email)
		case <-time.After(2 * time.Second):
			t.Fatal("emails were not delivered")
		}
	}

	assert.Equal(t, []string{"first@example.com", "second@example.com"}, got)
}

func TestEmailDispatcher_StopAbandonsPendingDelay(t *testing.T) {
	svc := newCaptureEmailService()
	dispatcher := NewEmailDispatcher(svc, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		dispatcher.Start(ctx)
		close(done)
	}()

	dispatcher.Enqueue("late@example.com", 1*time.Hour)
	time.Sleep(50 * time.Millisecond)
	dispatcher.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.sent, "message pending its delay must not be sent after shutdown")
}
