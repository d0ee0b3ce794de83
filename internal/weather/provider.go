package weather

import (
	"context"
)

// Geocoder resolves a free-text place name to candidate places.
// An empty slice with a nil error means the name matched nothing.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, name string) ([]GeocodeResult, error)
}

// Forecaster fetches the current conditions for a coordinate pair.
// It returns ErrNoCurrentWeather when the upstream has no current observation.
type Forecaster interface {
	Name() string
	Current(ctx context.Context, lat, lon float64) (CurrentConditions, error)
}
