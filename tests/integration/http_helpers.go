package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"

	"github.com/JeanneDioso/storefront/internal/auth"
	"github.com/JeanneDioso/storefront/internal/database"
	"github.com/JeanneDioso/storefront/internal/handlers"
	"github.com/JeanneDioso/storefront/internal/repositories"
	"github.com/JeanneDioso/storefront/internal/routes"
	"github.com/JeanneDioso/storefront/internal/services"
	pkghttp "github.com/JeanneDioso/storefront/pkg/http"
)

const (
	testJWTSecret    = "test-secret-32-characters-long-for-testing"
	testMaxAttempts  = 5
	testLockoutDecay = 2 * time.Minute
	testWelcomeDelay = 10 * time.Millisecond
)

// TestServer wraps httptest.Server with the full request path wired against
// real postgres and redis containers
type TestServer struct {
	Server     *httptest.Server
	DB         *database.DB
	Dispatcher *services.EmailDispatcher
	logger     *slog.Logger
}

// NewTestServer initializes a complete HTTP server with real stores and a
// no-op email sender
func NewTestServer(db *database.DB, redisClient *redis.Client) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	revokeRepo := repositories.NewTokenRevocationRepository(db)
	throttleRepo := repositories.NewThrottleRepository(redisClient)

	tokenManager := auth.NewTokenManager(testJWTSecret, 15*time.Minute)

	throttleService := services.NewThrottleService(throttleRepo, services.ThrottleConfig{
		MaxAttempts: testMaxAttempts,
		Decay:       testLockoutDecay,
	}, logger)

	emailService := services.NewNoopEmailService(logger)
	dispatcher := services.NewEmailDispatcher(emailService, logger)

	authService := services.NewAuthService(
		userRepo,
		revokeRepo,
		throttleService,
		tokenManager,
		dispatcher,
		testWelcomeDelay,
		logger,
	)
	orderService := services.NewOrderService(productRepo, orderRepo, logger)

	ipConfig := &pkghttp.IPConfig{}
	authHandler := handlers.NewAuthHandler(authService, ipConfig)
	orderHandler := handlers.NewOrderHandler(orderService)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, authHandler, orderHandler, tokenManager, revokeRepo)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:     server,
		DB:         db,
		Dispatcher: dispatcher,
		logger:     logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestRaw posts a raw body, useful for malformed payload cases
func (ts *TestServer) RequestRaw(method, path, rawBody string) (*http.Response, error) {
	req, err := http.NewRequest(method, ts.Server.URL+path, bytes.NewBufferString(rawBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with access token
func (ts *TestServer) RequestWithAuth(method, path, accessToken string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}
	return ts.Request(method, path, body, headers)
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractAccessToken extracts the access token from a login response
func ExtractAccessToken(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	var authResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	token, _ := authResp["access_token"].(string)
	return token, nil
}

// TestUser generates unique test user credentials using timestamp
func TestUser(suffix string) (email, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123!"
	return
}
