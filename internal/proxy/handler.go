package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/five82/quotedrop/internal/api"
)

// HealthPath is the route served by the health handler.
const HealthPath = "/api/health"

// DefaultFetchTimeout bounds the backend call made for each health check.
const DefaultFetchTimeout = 5 * time.Second

const (
	statusSuccess = "success"
	statusError   = "error"

	fetchedMessage = "Backend data fetched successfully"
	failedMessage  = "Failed to fetch data from backend"
)

// Fetcher is the single backend call the proxy makes. *api.Client satisfies
// it.
type Fetcher interface {
	Get(ctx context.Context, path string, dest any) error
}

// SuccessResponse is returned with 200 when the backend root answered JSON.
type SuccessResponse struct {
	Status          string          `json:"status"`
	Message         string          `json:"message"`
	BackendResponse json.RawMessage `json:"backend_response"`
}

// ErrorResponse is returned with 503 for every failure.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthHandler forwards a health check to the backend root.
type HealthHandler struct {
	backend Fetcher
	timeout time.Duration
}

var errNoBackend = errors.New("no backend configured")

// NewHealthHandler returns a handler fetching from backend. A zero timeout
// means DefaultFetchTimeout.
func NewHealthHandler(backend Fetcher, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HealthHandler{backend: backend, timeout: timeout}
}

// HandleHealth fetches GET / from the backend and wraps the body. A network
// error, a non-2xx status, a body that is not JSON and a timeout all produce
// the same 503; the backend's own status is not forwarded.
func (h *HealthHandler) HandleHealth(c echo.Context) error {
	body, err := h.fetch(c.Request().Context())
	if err != nil {
		log.Printf("health check: backend fetch failed (request %s): %v",
			c.Response().Header().Get(echo.HeaderXRequestID), err)
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Status:  statusError,
			Message: failedMessage,
		})
	}
	return c.JSON(http.StatusOK, SuccessResponse{
		Status:          statusSuccess,
		Message:         fetchedMessage,
		BackendResponse: body,
	})
}

func (h *HealthHandler) fetch(parent context.Context) (json.RawMessage, error) {
	if h.backend == nil {
		return nil, errNoBackend
	}
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	// RawMessage keeps the body verbatim but still rejects anything that is
	// not a JSON value.
	var body json.RawMessage
	if err := h.backend.Get(ctx, api.RootPath, &body); err != nil {
		return nil, err
	}
	return body, nil
}
