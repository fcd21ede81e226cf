package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JeanneDioso/storefront/internal/models"
	pkglogger "github.com/JeanneDioso/storefront/pkg/logger"
)

// ThrottleStore defines the interface for the throttle counter store.
// The store is a required dependency: store errors fail the login path
// instead of bypassing the throttle.
type ThrottleStore interface {
	LockRemaining(ctx context.Context, fingerprint string) (time.Duration, error)
	Increment(ctx context.Context, fingerprint string, decay time.Duration) (int64, error)
	Lock(ctx context.Context, fingerprint string, decay time.Duration) error
	Reset(ctx context.Context, fingerprint string) error
}

// ThrottleConfig holds configuration for login attempt throttling
type ThrottleConfig struct {
	MaxAttempts int           // failed attempts before lockout
	Decay       time.Duration // shared window for counter expiry and lockout
}

// ThrottleService guards the login endpoint against brute-force credential
// guessing. An identity is the normalized email plus client IP; the counter
// and the lock share the decay window, so an identity that stays quiet for
// the full window starts from a clean budget.
type ThrottleService struct {
	store  ThrottleStore
	config ThrottleConfig
	logger *slog.Logger
}

// NewThrottleService creates a new ThrottleService
func NewThrottleService(store ThrottleStore, config ThrottleConfig, logger *slog.Logger) *ThrottleService {
	return &ThrottleService{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Check decides whether a login attempt for the identity may proceed.
// A locked identity yields a LockoutError carrying the remaining lockout
// duration; a store failure yields a storage error.
func (s *ThrottleService) Check(ctx context.Context, email, ipAddress string) error {
	fingerprint := identityFingerprint(email, ipAddress)

	remaining, err := s.store.LockRemaining(ctx, fingerprint)
	if err != nil {
		s.logger.Error("throttle store unavailable", slog.Any("error", err))
		return err
	}

	if remaining > 0 {
		s.logger.Warn("login attempt while locked out",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Duration("retry_after", remaining))
		return &models.LockoutError{RetryAfter: remaining}
	}

	return nil
}

// RecordFailure increments the identity's attempt counter and transitions it
// into a lockout once the counter reaches the configured maximum. Malformed
// login payloads and wrong credentials are recorded identically.
func (s *ThrottleService) RecordFailure(ctx context.Context, email, ipAddress string) error {
	fingerprint := identityFingerprint(email, ipAddress)

	count, err := s.store.Increment(ctx, fingerprint, s.config.Decay)
	if err != nil {
		s.logger.Error("failed to record login failure", slog.Any("error", err))
		return err
	}

	if count >= int64(s.config.MaxAttempts) {
		if err := s.store.Lock(ctx, fingerprint, s.config.Decay); err != nil {
			s.logger.Error("failed to lock identity", slog.Any("error", err))
			return err
		}
		s.logger.Warn("identity locked out",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Int64("failed_attempts", count),
			slog.Duration("lockout", s.config.Decay))
	}

	return nil
}

// Reset clears the counter and lock state; called on successful authentication.
func (s *ThrottleService) Reset(ctx context.Context, email, ipAddress string) error {
	fingerprint := identityFingerprint(email, ipAddress)

	if err := s.store.Reset(ctx, fingerprint); err != nil {
		s.logger.Error("failed to reset throttle state", slog.Any("error", err))
		return err
	}

	return nil
}

// identityFingerprint hashes normalized email + IP into the throttle key
func identityFingerprint(email, ipAddress string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	data := []byte(fmt.Sprintf("%s:%s", email, ipAddress))
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)[:32]
}
