package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"careerscope/internal/config"
)

func breakerConfig(enabled bool) *config.CircuitBreakerConfig {
	return &config.CircuitBreakerConfig{
		Enabled:          enabled,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func TestNewBreakerDisabled(t *testing.T) {
	b := NewBreaker("test", breakerConfig(false), testLogger(t))

	if b != nil {
		t.Fatal("Disabled breaker should be nil")
	}

	// A nil breaker must still execute calls directly
	resp, err := b.Execute(func() (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK}, nil
	})
	if err != nil {
		t.Fatalf("Expected pass-through execution, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if !b.IsHealthy() {
		t.Error("Nil breaker should report healthy")
	}
}

func TestBreakerTripsOnTransportFailures(t *testing.T) {
	b := NewBreaker("test", breakerConfig(true), testLogger(t))

	if !b.IsHealthy() {
		t.Fatal("Breaker should start closed")
	}

	// Enough consecutive transport failures to cross the threshold
	for i := 0; i < 5; i++ {
		_, _ = b.Execute(func() (*http.Response, error) {
			return nil, fmt.Errorf("connection refused")
		})
	}

	if b.IsHealthy() {
		t.Error("Breaker should be open after repeated transport failures")
	}

	// Calls are now rejected without invoking the round trip
	invoked := false
	_, err := b.Execute(func() (*http.Response, error) {
		invoked = true
		return &http.Response{StatusCode: http.StatusOK}, nil
	})
	if err == nil {
		t.Error("Expected open-circuit error")
	}
	if invoked {
		t.Error("Open breaker must not invoke the round trip")
	}
}

func TestBreakerIgnoresErrorStatusResponses(t *testing.T) {
	// HTTP error statuses are responses, not failures: the service rejected
	// the request and its detail must reach the user.
	b := NewBreaker("test", breakerConfig(true), testLogger(t))

	for i := 0; i < 10; i++ {
		resp, err := b.Execute(func() (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusInternalServerError}, nil
		})
		if err != nil {
			t.Fatalf("Call %d: expected response, got %v", i, err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("Call %d: unexpected status %d", i, resp.StatusCode)
		}
	}

	if !b.IsHealthy() {
		t.Error("Error statuses must not trip the breaker")
	}
}
