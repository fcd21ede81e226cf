package handlers

import (
	"context"

	"github.com/JeanneDioso/storefront/internal/models"
	"github.com/JeanneDioso/storefront/internal/services"
)

// MockAuthService is a configurable mock implementing AuthServiceInterface
type MockAuthService struct {
	LoginFunc                func(ctx context.Context, email, password, ipAddress string) (*services.AuthResponse, error)
	RecordInvalidPayloadFunc func(ctx context.Context, email, ipAddress string) error
	RegisterFunc             func(ctx context.Context, email, password string) (*services.UserResponse, error)
	LogoutFunc               func(ctx context.Context, accessToken string) error
	CurrentUserFunc          func(ctx context.Context, userID string) (*services.UserResponse, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ipAddress string) (*services.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, ipAddress)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) RecordInvalidPayload(ctx context.Context, email, ipAddress string) error {
	if m.RecordInvalidPayloadFunc != nil {
		return m.RecordInvalidPayloadFunc(ctx, email, ipAddress)
	}
	return nil
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*services.UserResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, accessToken)
	}
	return nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*services.UserResponse, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

// MockOrderService is a configurable mock implementing OrderServiceInterface
type MockOrderService struct {
	PlaceOrderFunc func(ctx context.Context, productID, quantity int, userID string) (*models.OrderConfirmation, error)
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, productID, quantity int, userID string) (*models.OrderConfirmation, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, productID, quantity, userID)
	}
	return nil, models.ErrInternalServer
}
