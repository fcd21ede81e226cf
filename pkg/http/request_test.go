package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pkghttp "github.com/JeanneDioso/storefront/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP_RemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.RemoteAddr = "203.0.113.7:54321"

	ip := pkghttp.ExtractClientIP(r, nil)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestExtractClientIP_SpoofedHeaderIgnoredWithoutTrustedProxy(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	r.Header.Set("X-Forwarded-For", "10.10.10.10")

	// Without trusted proxies, forwarding headers must not rotate the identity
	ip := pkghttp.ExtractClientIP(r, &pkghttp.IPConfig{})
	assert.Equal(t, "203.0.113.7", ip)
}

func TestExtractClientIP_TrustedProxyForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.RemoteAddr = "192.168.1.1:54321"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 192.168.1.1")

	cfg := &pkghttp.IPConfig{TrustedProxies: []string{"192.168.1.0/24"}}
	ip := pkghttp.ExtractClientIP(r, cfg)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestExtractClientIP_TrustedProxyRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.RemoteAddr = "192.168.1.1:54321"
	r.Header.Set("X-Real-IP", "203.0.113.9")

	cfg := &pkghttp.IPConfig{TrustedProxies: []string{"192.168.1.0/24"}}
	ip := pkghttp.ExtractClientIP(r, cfg)
	assert.Equal(t, "203.0.113.9", ip)
}

func TestExtractClientIP_InvalidForwardedValueFallsBack(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.RemoteAddr = "192.168.1.1:54321"
	r.Header.Set("X-Forwarded-For", "not-an-ip")

	cfg := &pkghttp.IPConfig{TrustedProxies: []string{"192.168.1.0/24"}}
	ip := pkghttp.ExtractClientIP(r, cfg)
	assert.Equal(t, "192.168.1.1", ip)
}
