package weather

import (
	"github.com/i474232898/weather-lookup/internal/common"
)

// Status represents the kind of result a single lookup produced.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusInvalid  Status = "invalid"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// GeocodeResult is a resolved place. Admin1 is empty when the upstream omits it.
type GeocodeResult struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DisplayName returns "<name>[, <admin1>], <country>".
func (g GeocodeResult) DisplayName() string {
	return common.JoinNonEmpty(", ", g.Name, g.Admin1, g.Country)
}

// CurrentConditions is the instantaneous observation returned by the forecast API.
// Values are passed through as received; rounding happens at display time only.
type CurrentConditions struct {
	Temperature   float64 `json:"temperatureC"`
	WindSpeed     float64 `json:"windSpeedKmh"`
	WindDirection int     `json:"windDirectionDeg"`
	WeatherCode   int     `json:"weatherCode"`
	Time          string  `json:"time"` // ISO-8601, local to the place (timezone=auto)
}

// Report is the render-ready payload of a successful lookup.
type Report struct {
	Place       string            `json:"place"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Current     CurrentConditions `json:"current"`
	Description string            `json:"description"`
	Symbol      string            `json:"symbol"`
	MapURL      string            `json:"mapUrl"`
}

// Outcome is the entire result of one user-initiated search.
type Outcome struct {
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
	Report  *Report `json:"report,omitempty"`
}

// OK reports whether the lookup succeeded.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess && o.Report != nil
}

func newReport(place GeocodeResult, current CurrentConditions) *Report {
	return &Report{
		Place:       place.DisplayName(),
		Latitude:    place.Latitude,
		Longitude:   place.Longitude,
		Current:     current,
		Description: Describe(current.WeatherCode),
		Symbol:      Symbol(current.WeatherCode),
		MapURL:      MapURL(place.Latitude, place.Longitude),
	}
}
