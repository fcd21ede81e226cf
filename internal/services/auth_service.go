package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JeanneDioso/storefront/internal/auth"
	"github.com/JeanneDioso/storefront/internal/models"
	pkgauth "github.com/JeanneDioso/storefront/pkg/auth"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// TokenRevocationRepository defines the interface for token revocation operations
type TokenRevocationRepository interface {
	RevokeToken(ctx context.Context, jti, userID string, expiresAt time.Time, reason string) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// LoginThrottle guards the login path against brute-force attempts
type LoginThrottle interface {
	Check(ctx context.Context, email, ipAddress string) error
	RecordFailure(ctx context.Context, email, ipAddress string) error
	Reset(ctx context.Context, email, ipAddress string) error
}

// WelcomeDispatcher enqueues fire-and-forget outbound email
type WelcomeDispatcher interface {
	Enqueue(email string, delay time.Duration)
}

// AuthService handles authentication business logic
type AuthService struct {
	repo         UserRepository
	revokeRepo   TokenRevocationRepository
	throttle     LoginThrottle
	tm           *auth.TokenManager
	dispatcher   WelcomeDispatcher
	welcomeDelay time.Duration
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repo UserRepository,
	revokeRepo TokenRevocationRepository,
	throttle LoginThrottle,
	tm *auth.TokenManager,
	dispatcher WelcomeDispatcher,
	welcomeDelay time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		repo:         repo,
		revokeRepo:   revokeRepo,
		throttle:     throttle,
		tm:           tm,
		dispatcher:   dispatcher,
		welcomeDelay: welcomeDelay,
		logger:       logger,
	}
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse represents the response from a successful login
type AuthResponse struct {
	AccessToken string `json:"access_token"`
}

// Login authenticates a user and returns an access token. The throttle is
// consulted before credentials: a locked identity gets a LockoutError with
// its retry-after, never a plain credential failure. Every failed credential
// check feeds the throttle; a success resets it.
func (s *AuthService) Login(ctx context.Context, email, password, ipAddress string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.throttle.Check(ctx, email, ipAddress); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Log login failure without exposing email
			s.logger.Info("login failed: invalid credentials")
			if terr := s.throttle.RecordFailure(ctx, email, ipAddress); terr != nil {
				return nil, terr
			}
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, err
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials", slog.String("user_id", user.ID))
		if terr := s.throttle.RecordFailure(ctx, email, ipAddress); terr != nil {
			return nil, terr
		}
		return nil, models.ErrUnauthorized
	}

	if err := s.throttle.Reset(ctx, email, ipAddress); err != nil {
		return nil, err
	}

	accessToken, err := s.tm.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))

	return &AuthResponse{AccessToken: accessToken}, nil
}

// RecordInvalidPayload counts a malformed login request against the caller's
// attempt budget, exactly like a wrong password.
func (s *AuthService) RecordInvalidPayload(ctx context.Context, email, ipAddress string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.throttle.Check(ctx, email, ipAddress); err != nil {
		return err
	}

	return s.throttle.RecordFailure(ctx, email, ipAddress)
}

// Register creates a new user account and enqueues a delayed welcome email.
// Email dispatch is fire-and-forget; it never blocks or fails the response.
func (s *AuthService) Register(ctx context.Context, email, password string) (*UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("registration failed: user already exists")
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check if user exists", slog.Any("error", err))
		return nil, err
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
	}

	createdUser, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(createdUser.Email, s.welcomeDelay)
	}

	s.logger.Info("user registered", slog.String("user_id", createdUser.ID))

	return userModelToResponse(createdUser), nil
}

// Logout revokes the current access token
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tm.ValidateToken(accessToken)
	if err != nil {
		return models.ErrUnauthorized
	}

	expiresAt := claims.ExpiresAt.Time
	err = s.revokeRepo.RevokeToken(ctx, claims.ID, claims.UserID, expiresAt, "logout")
	if err != nil {
		s.logger.Error("failed to revoke token", slog.String("jti", claims.ID), slog.Any("error", err))
		return err
	}

	s.logger.Info("user logged out", slog.String("user_id", claims.UserID))
	return nil
}

// CurrentUser returns the account behind a validated token's user ID.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	return userModelToResponse(user), nil
}

// userModelToResponse converts a user model to its response DTO
func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
