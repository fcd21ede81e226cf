package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginLogoutFlow(t *testing.T) {
	resetState(t)

	email, password := TestUser("flow")

	// Register
	resp, err := testSrv.Request(http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate registration is rejected
	resp, err = testSrv.Request(http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login
	resp, err = testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	accessToken, err := ExtractAccessToken(resp)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)

	// Authenticated account lookup
	resp, err = testSrv.RequestWithAuth(http.MethodGet, "/auth/me", accessToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var meResp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, ParseJSONResponse(resp, &meResp))
	assert.Equal(t, email, meResp.User.Email)

	// Logout revokes the token
	resp, err = testSrv.RequestWithAuth(http.MethodPost, "/auth/logout", accessToken, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Revoked token no longer grants access
	resp, err = testSrv.RequestWithAuth(http.MethodGet, "/auth/me", accessToken, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	resetState(t)

	email, password := TestUser("lockout")
	_, err := SeedUser(context.Background(), testDB.Pool, email, password)
	require.NoError(t, err)

	// Burn through the attempt budget with wrong passwords
	for i := 0; i < testMaxAttempts; i++ {
		resp, err := testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
			"email":    email,
			"password": "wrong-password",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "attempt %d should fail with 401", i+1)
		resp.Body.Close()
	}

	// The identity is now locked; even correct credentials are rejected
	// with a retry-after rather than a credential failure
	resp, err := testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var errResp struct {
		Error      string `json:"error"`
		RetryAfter int    `json:"retry_after"`
	}
	require.NoError(t, ParseJSONResponse(resp, &errResp))
	assert.Equal(t, "too_many_attempts", errResp.Error)
	assert.Greater(t, errResp.RetryAfter, 0)
	assert.LessOrEqual(t, errResp.RetryAfter, 120)
}

func TestMalformedLoginPayloadCountsAgainstBudget(t *testing.T) {
	resetState(t)

	email, password := TestUser("malformed")
	_, err := SeedUser(context.Background(), testDB.Pool, email, password)
	require.NoError(t, err)

	// Payloads that parse but fail field validation consume attempts
	// exactly like wrong passwords
	for i := 0; i < testMaxAttempts; i++ {
		resp, err := testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
			"email":    email,
			"password": "",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "attempt %d should fail validation", i+1)
		resp.Body.Close()
	}

	resp, err := testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	resp.Body.Close()
}

func TestSuccessfulLoginResetsAttemptBudget(t *testing.T) {
	resetState(t)

	email, password := TestUser("reset")
	_, err := SeedUser(context.Background(), testDB.Pool, email, password)
	require.NoError(t, err)

	// A few failures, then a success
	for i := 0; i < testMaxAttempts-1; i++ {
		resp, err := testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
			"email":    email,
			"password": "wrong-password",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The budget is fresh again: a single failure is a plain 401, not a lockout
	resp, err = testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": "wrong-password",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
