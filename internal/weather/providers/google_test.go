package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func newFakeGoogle(
	forward func(geocoder.Address) (geocoder.Location, error),
	reverse func(geocoder.Location) ([]geocoder.Address, error),
) *GoogleGeocoder {
	return &GoogleGeocoder{
		name:    "google-geocoding",
		circuit: newCircuitBreaker("google-geocoding-test"),
		forward: forward,
		reverse: reverse,
	}
}

func TestGoogleGeocodeSuccess(t *testing.T) {
	g := newFakeGoogle(
		func(a geocoder.Address) (geocoder.Location, error) {
			if a.City != "Paris" {
				t.Errorf("expected city Paris, got %q", a.City)
			}
			return geocoder.Location{Latitude: 48.85, Longitude: 2.35}, nil
		},
		func(geocoder.Location) ([]geocoder.Address, error) {
			return []geocoder.Address{{City: "Paris", State: "Ile-de-France", Country: "France"}}, nil
		},
	)

	places, err := g.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("expected 1 place, got %d", len(places))
	}
	if got := places[0].DisplayName(); got != "Paris, Ile-de-France, France" {
		t.Errorf("unexpected display name %q", got)
	}
}

func TestGoogleGeocodeZeroResults(t *testing.T) {
	g := newFakeGoogle(
		func(geocoder.Address) (geocoder.Location, error) {
			return geocoder.Location{}, errors.New("ZERO_RESULTS")
		},
		nil,
	)

	places, err := g.Geocode(context.Background(), "Nonexistentplacexyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("expected no places, got %d", len(places))
	}
}

func TestGoogleGeocodeMissingCountry(t *testing.T) {
	g := newFakeGoogle(
		func(geocoder.Address) (geocoder.Location, error) {
			return geocoder.Location{Latitude: 1, Longitude: 1}, nil
		},
		func(geocoder.Location) ([]geocoder.Address, error) {
			return nil, nil
		},
	)

	_, err := g.Geocode(context.Background(), "Somewhere")
	var se *weather.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestGoogleGeocodeHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	g := newFakeGoogle(
		func(geocoder.Address) (geocoder.Location, error) {
			<-release
			return geocoder.Location{}, nil
		},
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := g.Geocode(ctx, "Paris"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
