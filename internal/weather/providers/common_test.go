package providers

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func TestCircuitOpensOnRepeatedServerErrors(t *testing.T) {
	srv, hits := jsonServer(t, http.StatusInternalServerError, `{}`, nil)
	g := NewOpenMeteoGeocoder(testHTTPConfig(), srv.URL)

	// The default trip rule opens after more than five consecutive failures.
	for i := 0; i < 6; i++ {
		_, err := g.Geocode(context.Background(), "Paris")
		var se *weather.StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
			t.Fatalf("call %d: expected 500 status error, got %v", i+1, err)
		}
	}
	if got := g.circuit.State(); got != gobreaker.StateOpen {
		t.Fatalf("expected breaker to be open, got %s", got)
	}

	_, err := g.Geocode(context.Background(), "Paris")
	if !errors.Is(err, errCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if got := atomic.LoadInt32(hits); got != 6 {
		t.Errorf("expected open breaker to skip the upstream, got %d hits", got)
	}

	svc := weather.NewService(g, NewOpenMeteoForecaster(testHTTPConfig(), srv.URL), nil)
	out := svc.ResolveWeather(context.Background(), "Paris")
	if out.Status != weather.StatusFailed || out.Message != weather.MsgGeocodingFailed {
		t.Errorf("expected failed/%q, got %s/%q", weather.MsgGeocodingFailed, out.Status, out.Message)
	}
	if got := atomic.LoadInt32(hits); got != 6 {
		t.Errorf("expected no further upstream calls, got %d hits", got)
	}
}

func TestCircuitIgnoresClientErrors(t *testing.T) {
	srv, hits := jsonServer(t, http.StatusNotFound, `{}`, nil)
	g := NewOpenMeteoGeocoder(testHTTPConfig(), srv.URL)

	for i := 0; i < 10; i++ {
		_, err := g.Geocode(context.Background(), "Paris")
		if errors.Is(err, errCircuitOpen) {
			t.Fatalf("call %d: breaker opened on a client error", i+1)
		}
	}
	if got := atomic.LoadInt32(hits); got != 10 {
		t.Errorf("expected every call to reach the upstream, got %d hits", got)
	}
	if got := g.circuit.State(); got != gobreaker.StateClosed {
		t.Errorf("expected breaker to stay closed, got %s", got)
	}
}
