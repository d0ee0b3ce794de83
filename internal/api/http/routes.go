package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/session"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// SessionCookie is the name of the cookie carrying the page session id.
const SessionCookie = "wl_session"

// Resolver is the lookup the handlers run for every search.
type Resolver interface {
	ResolveWeather(ctx context.Context, query string) weather.Outcome
}

// Handler bundles the dependencies of the HTTP routes.
type Handler struct {
	resolver Resolver
	sessions *store.MemoryStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates a Handler. A nil logger disables logging.
func NewHandler(resolver Resolver, sessions *store.MemoryStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		resolver: resolver,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Get("/", h.page)
	app.Post("/search", h.search)

	v1 := app.Group("/api/v1")
	v1.Get("/weather", h.lookup)
}

// ErrorHandler renders every error returned by a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"status":  code,
		"message": err.Error(),
	})
}

func (h *Handler) page(c *fiber.Ctx) error {
	st := h.session(c)
	return h.render(c, st.Snapshot())
}

func (h *Handler) search(c *fiber.Ctx) error {
	st := h.session(c)
	// The session outlives the request; FormValue aliases fasthttp's buffer.
	query := utils.CopyString(c.FormValue("city"))

	token := st.Submit(query, h.now())
	outcome := h.resolver.ResolveWeather(c.UserContext(), query)
	if !st.Complete(token, outcome, h.now()) {
		h.logger.Debug("discarded stale lookup outcome",
			zap.String("query", query),
			zap.Uint64("token", uint64(token)),
		)
	}

	return h.render(c, st.Snapshot())
}

func (h *Handler) lookup(c *fiber.Ctx) error {
	outcome := h.resolver.ResolveWeather(c.UserContext(), c.Query("city"))

	switch outcome.Status {
	case weather.StatusSuccess:
		return c.JSON(outcome)
	case weather.StatusInvalid:
		return fiber.NewError(fiber.StatusBadRequest, outcome.Message)
	case weather.StatusNotFound:
		return fiber.NewError(fiber.StatusNotFound, outcome.Message)
	default:
		return fiber.NewError(fiber.StatusBadGateway, outcome.Message)
	}
}

// session returns the caller's page state, issuing a cookie for new visitors.
func (h *Handler) session(c *fiber.Ctx) *session.State {
	id, st := h.sessions.GetOrCreate(c.Cookies(SessionCookie))
	if id != c.Cookies(SessionCookie) {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return st
}

func (h *Handler) render(c *fiber.Ctx, v session.View) error {
	body, err := renderPage(v)
	if err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(body)
}
