// Package client provides the outbound gateway to the external client
// service, protected by a circuit breaker with a fallback.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"product_service_backend/internal/product/domain"
	"product_service_backend/platform/apperr"
	"product_service_backend/platform/breaker"
	"product_service_backend/platform/logger"
	"product_service_backend/platform/metrics"
)

// BreakerName identifies the client-service dependency in breaker state,
// logs and metrics.
const BreakerName = "clientService"

// Config configures the client-service gateway.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Gateway fetches client profiles over HTTP. All calls run through a shared
// circuit breaker; any failure, including a short-circuited call, is routed
// through the fallback and surfaces as a service-unavailable error.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	breaker    *breaker.Breaker
	log        *logger.Logger
	metrics    *metrics.Collector
}

// New creates a new client-service gateway.
func New(cfg Config, br *breaker.Breaker, log *logger.Logger, collector *metrics.Collector) *Gateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Gateway{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    br,
		log:        log,
		metrics:    collector,
	}
}

// Fetch retrieves the profile for the given client id. The breaker's own
// probing cadence is the only retry; the gateway never retries inline.
func (g *Gateway) Fetch(ctx context.Context, clientID string) (domain.ClientProfile, error) {
	var profile domain.ClientProfile

	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		fetched, err := g.doFetch(ctx, clientID)
		if err != nil {
			return err
		}
		profile = fetched
		return nil
	})
	if err != nil {
		g.record(err)
		return domain.ClientProfile{}, g.fallback(clientID, err)
	}

	g.record(nil)
	return profile, nil
}

func (g *Gateway) doFetch(ctx context.Context, clientID string) (domain.ClientProfile, error) {
	url := g.baseURL + "/api/v1/client/" + clientID
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ClientProfile{}, fmt.Errorf("build client request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(request)
	if err != nil {
		return domain.ClientProfile{}, fmt.Errorf("client service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.ClientProfile{}, fmt.Errorf("client service returned %d: %s", resp.StatusCode, string(body))
	}

	var profile domain.ClientProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return domain.ClientProfile{}, fmt.Errorf("decode client response: %w", err)
	}
	return profile, nil
}

// fallback converts any upstream failure into a typed service-unavailable
// error carrying the cause. It never retries.
func (g *Gateway) fallback(clientID string, cause error) error {
	g.log.GatewayFallback(BreakerName, clientID, cause)
	return apperr.Unavailable("client service is currently unavailable", cause)
}

func (g *Gateway) record(err error) {
	if g.metrics == nil {
		return
	}
	switch {
	case err == nil:
		g.metrics.GatewayRequest(metrics.OutcomeSuccess)
	case errors.Is(err, breaker.ErrOpen):
		g.metrics.GatewayRequest(metrics.OutcomeShortCircuited)
	default:
		g.metrics.GatewayRequest(metrics.OutcomeFailure)
	}
}
