package services

import (
	"context"
	"time"

	"github.com/JeanneDioso/storefront/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	CreateFunc     func(ctx context.Context, user *models.User) (*models.User, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

// MockTokenRevocationRepository implements TokenRevocationRepository for testing
type MockTokenRevocationRepository struct {
	RevokeTokenFunc    func(ctx context.Context, jti, userID string, expiresAt time.Time, reason string) error
	IsTokenRevokedFunc func(ctx context.Context, jti string) (bool, error)
}

func (m *MockTokenRevocationRepository) RevokeToken(ctx context.Context, jti, userID string, expiresAt time.Time, reason string) error {
	if m.RevokeTokenFunc != nil {
		return m.RevokeTokenFunc(ctx, jti, userID, expiresAt, reason)
	}
	return nil
}

func (m *MockTokenRevocationRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsTokenRevokedFunc != nil {
		return m.IsTokenRevokedFunc(ctx, jti)
	}
	return false, nil
}

// MockLoginThrottle implements LoginThrottle for testing
type MockLoginThrottle struct {
	CheckFunc         func(ctx context.Context, email, ipAddress string) error
	RecordFailureFunc func(ctx context.Context, email, ipAddress string) error
	ResetFunc         func(ctx context.Context, email, ipAddress string) error
}

func (m *MockLoginThrottle) Check(ctx context.Context, email, ipAddress string) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, email, ipAddress)
	}
	return nil
}

func (m *MockLoginThrottle) RecordFailure(ctx context.Context, email, ipAddress string) error {
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, email, ipAddress)
	}
	return nil
}

func (m *MockLoginThrottle) Reset(ctx context.Context, email, ipAddress string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, email, ipAddress)
	}
	return nil
}

// MockProductGetter implements ProductGetter for testing
type MockProductGetter struct {
	GetByIDFunc func(ctx context.Context, id int) (*models.Product, error)
}

func (m *MockProductGetter) GetByID(ctx context.Context, id int) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrProductNotFound
}

// MockOrderStore implements OrderStore for testing
type MockOrderStore struct {
	CreateWithStockDecrementFunc func(ctx context.Context, order *models.Order) (int, error)
}

func (m *MockOrderStore) CreateWithStockDecrement(ctx context.Context, order *models.Order) (int, error) {
	if m.CreateWithStockDecrementFunc != nil {
		return m.CreateWithStockDecrementFunc(ctx, order)
	}
	return 0, models.ErrStorage
}

// MockDispatcher implements WelcomeDispatcher for testing
type MockDispatcher struct {
	EnqueueFunc func(email string, delay time.Duration)
}

func (m *MockDispatcher) Enqueue(email string, delay time.Duration) {
	if m.EnqueueFunc != nil {
		m.EnqueueFunc(email, delay)
	}
}
