package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when the query is empty or whitespace only.
	ErrEmptyQuery = errors.New("empty query")
	// ErrCityNotFound is returned when geocoding yields no candidates.
	ErrCityNotFound = errors.New("city not found")
	// ErrNoCurrentWeather is returned when the forecast response has no current_weather object.
	ErrNoCurrentWeather = errors.New("no current weather in response")
)

// User-facing messages.
const (
	MsgEmptyQuery       = "Please enter a city name."
	MsgCityNotFound     = "City not found. Please check the spelling and try again."
	MsgGeocodingFailed  = "Geocoding request failed"
	MsgWeatherFailed    = "Weather request failed"
	MsgNoCurrentWeather = "No current weather available"
)

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Upstream   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Upstream, e.StatusCode)
}

// SchemaError is returned when an upstream payload does not match its schema.
type SchemaError struct {
	Upstream string
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s response: %v", e.Upstream, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
