package bootstrap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/unique-id/internal/bootstrap"
	"github.com/mohammadpnp/unique-id/internal/config"
	"github.com/mohammadpnp/unique-id/internal/logging"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "0",
		BatchWorkers:    2,
		BatchChunkSize:  100,
		BodyLimit:       "1K",
		ShutdownTimeout: time.Second,
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	server := bootstrap.NewHTTPServer(testConfig(), logging.Discard())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestIdentifierRouteIsWired(t *testing.T) {
	t.Parallel()

	server := bootstrap.NewHTTPServer(testConfig(), logging.Discard())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/identifiers", strings.NewReader(`{"first_name":"John","last_name":"Doe"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "JD-74319") {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	server := bootstrap.NewHTTPServer(testConfig(), logging.Discard())

	body := `{"first_name":"` + strings.Repeat("a", 4096) + `","last_name":"Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identifiers", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- bootstrap.Run(ctx, testConfig(), logging.Discard())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
