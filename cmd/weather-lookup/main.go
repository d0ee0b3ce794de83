package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

func main() {
	city := flag.String("city", "", "Look up one city, print the result and exit")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.DotEnvErr != nil {
		log.Debug("no .env file loaded", zap.Error(cfg.DotEnvErr))
	}

	service := newService(cfg, log)

	if *city != "" {
		code := runOnce(service, *city, os.Stdout)
		log.Sync()
		os.Exit(code)
	}

	// In-memory page sessions with idle eviction.
	sessions := store.NewMemoryStore(cfg.SessionMaxCount, cfg.SessionMaxAge)

	sched := scheduler.New(sessions, cfg.SessionSweepInterval, log)
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.NewHandler(service, sessions, log))

	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newService(cfg *config.AppConfig, log *zap.Logger) *weather.Service {
	// Shared HTTP client for outbound calls; zero timeout keeps the transport default.
	httpCfg := providers.DefaultHTTPClientConfig(&http.Client{Timeout: cfg.HTTPTimeout})
	httpCfg.Backoff.MaxRetries = cfg.HTTPMaxRetries

	var geocoder weather.Geocoder = providers.NewOpenMeteoGeocoder(httpCfg, cfg.GeocodingBaseURL)
	if cfg.GoogleGeocoderAPIKey != "" {
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
	}
	forecaster := providers.NewOpenMeteoForecaster(httpCfg, cfg.ForecastBaseURL)

	log.Info("weather service configured",
		zap.String("geocoder", geocoder.Name()),
		zap.String("forecaster", forecaster.Name()),
		zap.Int("maxRetries", httpCfg.Backoff.MaxRetries),
	)
	return weather.NewService(geocoder, forecaster, log)
}

// runOnce prints a single lookup and returns the process exit code.
func runOnce(service *weather.Service, city string, w io.Writer) int {
	out := service.ResolveWeather(context.Background(), city)
	if !out.OK() {
		fmt.Fprintf(w, "error: %s\n", out.Message)
		return 1
	}

	r := out.Report
	fmt.Fprintf(w, "\n%s\n", r.Headline())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Temperature:\t%s\n", r.Temperature())
	fmt.Fprintf(tw, "Condition:\t%s\n", r.Description)
	fmt.Fprintf(tw, "Wind:\t%s\n", r.Wind())
	fmt.Fprintf(tw, "Observed:\t%s\n", r.Current.Time)
	fmt.Fprintf(tw, "Map:\t%s\n", r.MapURL)
	tw.Flush()

	fmt.Fprintln(w)
	return 0
}
