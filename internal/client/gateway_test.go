package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"product_service_backend/internal/product/domain"
	"product_service_backend/platform/apperr"
	"product_service_backend/platform/breaker"
	"product_service_backend/platform/logger"
)

func newTestGateway(baseURL string, cfg breaker.Config) *Gateway {
	br := breaker.New(BreakerName, cfg)
	return New(Config{BaseURL: baseURL, Timeout: time.Second}, br, logger.New("test"), nil)
}

func TestGatewayFetchDecodesProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/client/c1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.ClientProfile{
			ID:      "c1",
			Name:    "Acme SA",
			DNI:     "12345678",
			Type:    domain.ClientTypeBusiness,
			Subtype: domain.ClientSubtypePYME,
		})
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, breaker.Config{})

	profile, err := gateway.Fetch(context.Background(), "c1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if profile.ID != "c1" || profile.Type != domain.ClientTypeBusiness || profile.Subtype != domain.ClientSubtypePYME {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestGatewayUpstreamErrorBecomesUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, breaker.Config{})

	_, err := gateway.Fetch(context.Background(), "c1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
	if err.Error() != "client service is currently unavailable" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestGatewayShortCircuitsAfterRepeatedFailures(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, breaker.Config{
		WindowSize:  4,
		MinCalls:    3,
		FailureRate: 0.5,
		Cooldown:    time.Minute,
		HalfOpenMax: 1,
	})

	// Three failures reach the minimum call count and trip the breaker.
	for i := 0; i < 3; i++ {
		if _, err := gateway.Fetch(context.Background(), "c1"); err == nil {
			t.Fatal("expected an error")
		}
	}
	hit := atomic.LoadInt32(&requests)
	if hit != 3 {
		t.Fatalf("expected 3 upstream requests, got %d", hit)
	}

	// The next call fails fast without reaching the server and still
	// surfaces as service unavailable.
	_, err := gateway.Fetch(context.Background(), "c1")
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != hit {
		t.Fatalf("expected no further upstream requests, got %d", got)
	}
}

func TestGatewayUnreachableHost(t *testing.T) {
	// Reserve a port and close it so the address refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	gateway := newTestGateway(url, breaker.Config{})

	_, err := gateway.Fetch(context.Background(), "c1")
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
}
