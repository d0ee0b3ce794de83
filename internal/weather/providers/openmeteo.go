package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// OpenMeteoGeocoder implements weather.Geocoder against the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder creates a geocoder. An empty baseURL selects DefaultGeocodingURL.
func NewOpenMeteoGeocoder(cfg HTTPClientConfig, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		name:    "openmeteo-geocoding",
		baseURL: baseURL,
		httpCfg: cfg,
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

type geocodingPayload struct {
	Results []geocodingResult `json:"results" validate:"omitempty,dive"`
}

type geocodingResult struct {
	Name      string   `json:"name" validate:"required"`
	Admin1    string   `json:"admin1"`
	Country   string   `json:"country" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// Geocode requests at most one candidate for name.
func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, name string) ([]weather.GeocodeResult, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", name)
		values.Set("count", "1")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.name, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload geocodingPayload
	if err := decodeJSON(g.name, resp.Body, &payload); err != nil {
		return nil, err
	}
	if err := checkSchema(g.name, &payload); err != nil {
		return nil, err
	}

	results := make([]weather.GeocodeResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, weather.GeocodeResult{
			Name:      r.Name,
			Admin1:    r.Admin1,
			Country:   r.Country,
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
		})
	}
	return results, nil
}

// OpenMeteoForecaster implements weather.Forecaster against the Open-Meteo forecast API.
type OpenMeteoForecaster struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoForecaster creates a forecaster. An empty baseURL selects DefaultForecastURL.
func NewOpenMeteoForecaster(cfg HTTPClientConfig, baseURL string) *OpenMeteoForecaster {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoForecaster{
		name:    "openmeteo-forecast",
		baseURL: baseURL,
		httpCfg: cfg,
		circuit: newCircuitBreaker("openmeteo-forecast"),
	}
}

func (p *OpenMeteoForecaster) Name() string {
	return p.name
}

type forecastPayload struct {
	CurrentWeather *currentWeather `json:"current_weather"`
}

type currentWeather struct {
	Temperature   *float64 `json:"temperature" validate:"required"`
	WindSpeed     *float64 `json:"windspeed" validate:"required,gte=0"`
	WindDirection *float64 `json:"winddirection" validate:"required,gte=0,lte=360"`
	WeatherCode   *int     `json:"weathercode" validate:"required,gte=0"`
	Time          string   `json:"time" validate:"required"`
}

// Current requests current conditions only; no hourly or daily ranges.
func (p *OpenMeteoForecaster) Current(ctx context.Context, lat, lon float64) (weather.CurrentConditions, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("current_weather", "true")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.name, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := decodeJSON(p.name, resp.Body, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if payload.CurrentWeather == nil {
		return weather.CurrentConditions{}, weather.ErrNoCurrentWeather
	}
	cw := payload.CurrentWeather
	if err := checkSchema(p.name, cw); err != nil {
		return weather.CurrentConditions{}, err
	}

	return weather.CurrentConditions{
		Temperature:   *cw.Temperature,
		WindSpeed:     *cw.WindSpeed,
		WindDirection: int(math.Round(*cw.WindDirection)) % 360,
		WeatherCode:   *cw.WeatherCode,
		Time:          cw.Time,
	}, nil
}
