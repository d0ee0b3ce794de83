package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Service resolves a city query into an Outcome by geocoding it and then
// fetching the current weather for the first match.
type Service struct {
	geocoder   Geocoder
	forecaster Forecaster
	logger     *zap.Logger
}

// NewService creates a new Service. A nil logger disables logging.
func NewService(geocoder Geocoder, forecaster Forecaster, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		geocoder:   geocoder,
		forecaster: forecaster,
		logger:     logger,
	}
}

// ResolveWeather runs one lookup. Every failure is terminal and reduced to a
// displayable message; nothing is returned as an error.
func (s *Service) ResolveWeather(ctx context.Context, query string) Outcome {
	report, err := s.lookup(ctx, query)
	if err == nil {
		return Outcome{Status: StatusSuccess, Report: report}
	}

	out := classify(err)
	if out.Status == StatusFailed {
		s.logger.Warn("weather lookup failed",
			zap.String("query", strings.TrimSpace(query)),
			zap.Error(err),
		)
	} else {
		s.logger.Debug("weather lookup rejected",
			zap.String("query", strings.TrimSpace(query)),
			zap.String("status", string(out.Status)),
		)
	}
	return out
}

// stageError records which of the two calls failed.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

const (
	stageGeocode  = "geocode"
	stageForecast = "forecast"
)

func (s *Service) lookup(ctx context.Context, query string) (*Report, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	places, err := s.geocoder.Geocode(ctx, q)
	if err != nil {
		return nil, &stageError{stage: stageGeocode, err: fmt.Errorf("%s: %w", s.geocoder.Name(), err)}
	}
	if len(places) == 0 {
		return nil, ErrCityNotFound
	}
	place := places[0]

	current, err := s.forecaster.Current(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return nil, &stageError{stage: stageForecast, err: fmt.Errorf("%s: %w", s.forecaster.Name(), err)}
	}

	s.logger.Debug("weather lookup resolved",
		zap.String("query", q),
		zap.String("place", place.DisplayName()),
		zap.Int("weatherCode", current.WeatherCode),
	)
	return newReport(place, current), nil
}

func classify(err error) Outcome {
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return Outcome{Status: StatusInvalid, Message: MsgEmptyQuery}
	case errors.Is(err, ErrCityNotFound):
		return Outcome{Status: StatusNotFound, Message: MsgCityNotFound}
	case errors.Is(err, ErrNoCurrentWeather):
		return Outcome{Status: StatusFailed, Message: MsgNoCurrentWeather}
	}

	var se *stageError
	if errors.As(err, &se) && se.stage == stageGeocode {
		return Outcome{Status: StatusFailed, Message: MsgGeocodingFailed}
	}
	return Outcome{Status: StatusFailed, Message: MsgWeatherFailed}
}
