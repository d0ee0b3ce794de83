package providers

import (
	"context"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// geocoder.ApiKey is package-global.
var googleKeyOnce sync.Once

// GoogleGeocoder implements weather.Geocoder with the Google Maps geocoding API.
// It forward-geocodes the query and reverse-geocodes the hit to recover the
// city, state and country used for the display name.
type GoogleGeocoder struct {
	name    string
	circuit *gobreaker.CircuitBreaker

	forward func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleGeocoder configures the library with apiKey and returns a geocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	googleKeyOnce.Do(func() {
		geocoder.ApiKey = apiKey
	})
	return &GoogleGeocoder{
		name:    "google-geocoding",
		circuit: newCircuitBreaker("google-geocoding"),
		forward: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

// Geocode returns at most one candidate. The library has no context support,
// so the lookup runs in a goroutine and is abandoned when ctx is done.
func (g *GoogleGeocoder) Geocode(ctx context.Context, name string) ([]weather.GeocodeResult, error) {
	type result struct {
		places []weather.GeocodeResult
		err    error
	}
	done := make(chan result, 1)

	go func() {
		v, err := g.circuit.Execute(func() (interface{}, error) {
			return g.lookup(name)
		})
		if err != nil {
			done <- result{err: err}
			return
		}
		places, _ := v.([]weather.GeocodeResult)
		done <- result{places: places}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.places, r.err
	}
}

func (g *GoogleGeocoder) lookup(name string) ([]weather.GeocodeResult, error) {
	loc, err := g.forward(geocoder.Address{City: name})
	if err != nil {
		if isZeroResults(err) {
			return nil, nil
		}
		return nil, err
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return nil, nil
	}

	place := weather.GeocodeResult{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}

	addrs, err := g.reverse(loc)
	if err != nil && !isZeroResults(err) {
		return nil, err
	}
	if len(addrs) > 0 {
		a := addrs[0]
		place.Name = common.FirstNonEmpty(a.City, name)
		place.Admin1 = a.State
		place.Country = a.Country
	}
	if place.Country == "" {
		return nil, &weather.SchemaError{Upstream: g.name, Err: errMissingCountry}
	}

	return []weather.GeocodeResult{place}, nil
}

// The library reports the API status only inside the error text, so there is
// no typed error to match against.
func isZeroResults(err error) bool {
	return strings.Contains(strings.ToUpper(err.Error()), "ZERO_RESULTS")
}
