package health

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"devcert/api/endpoints"
)

func init() {
	endpoints.Register(New())
}

// healthAPI health and readiness checks
// status can be toggled between 200 and 503 to drain the server
type healthAPI struct {
	mu        sync.RWMutex
	healthz   int
	readiness int
}

var _ endpoints.Endpoint = (*healthAPI)(nil)

func New() *healthAPI {
	return &healthAPI{
		healthz:   http.StatusOK,
		readiness: http.StatusOK,
	}
}

func (h *healthAPI) PathAndName() (string, string) { return "", "health handler" }

func (h *healthAPI) Route(e *echo.Group) {
	e.GET("/healthz", h.status(&h.healthz))
	e.GET("/readiness", h.status(&h.readiness))
	e.POST("/healthz/status", h.toggle(&h.healthz))
	e.POST("/readiness/status", h.toggle(&h.readiness))
}

type Status struct {
	Status string `json:"status"`
}

func (h *healthAPI) status(code *int) echo.HandlerFunc {
	return func(c echo.Context) error {
		h.mu.RLock()
		current := *code
		h.mu.RUnlock()

		return c.JSON(current, &Status{Status: statusText(current)})
	}
}

func (h *healthAPI) toggle(code *int) echo.HandlerFunc {
	return func(c echo.Context) error {
		h.mu.Lock()
		switch *code {
		case http.StatusOK:
			*code = http.StatusServiceUnavailable
		default:
			*code = http.StatusOK
		}
		current := *code
		h.mu.Unlock()

		return c.JSON(http.StatusOK, &Status{Status: statusText(current)})
	}
}

func statusText(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unavailable"
}
