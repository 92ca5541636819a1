package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"massbook/pkg/client"
	"massbook/pkg/config"
	"massbook/pkg/logger"
)

type stubHandler struct {
	apiCalls     int
	webhookCalls int
}

func (s *stubHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/bookings", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		s.apiCalls++
		w.WriteHeader(http.StatusOK)
	})
}

func (s *stubHandler) RegisterWebhookRoutes(router *httprouter.Router) {
	router.POST("/api/bookings/webhook/payment", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		s.webhookCalls++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Webhook received"))
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              "5000",
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1024,
		Log: logger.New(logger.Config{
			Level:  logger.ERROR,
			Format: logger.TEXT,
			Output: io.Discard,
		}),
		Client: client.NewClient(),
	}
}

func newTestApplication(t *testing.T) (*Application, *stubHandler) {
	t.Helper()
	a := NewApplication(testConfig())
	stub := &stubHandler{}
	a.SetApp(stub)
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a, stub
}

func TestWebhookBypassesClientMiddleware(t *testing.T) {
	a, stub := newTestApplication(t)

	// Burst well past the per-client limit, without a Content-Type header.
	// The processor must still get a 200 for every delivery.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings/webhook/payment", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		rec := httptest.NewRecorder()
		a.server.Handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("delivery %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if stub.webhookCalls != 5 {
		t.Errorf("expected 5 webhook deliveries to reach the handler, got %d", stub.webhookCalls)
	}
}

func TestClientRoutesStayRateLimited(t *testing.T) {
	a, _ := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.RemoteAddr = "198.51.100.8:40000"

	rec := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
}

func TestWebhookNotReplayedByIdempotencyCache(t *testing.T) {
	a, stub := newTestApplication(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings/webhook/payment", nil)
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("Idempotency-Key", "evt-1")
		rec := httptest.NewRecorder()
		a.server.Handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("delivery %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if stub.webhookCalls != 2 {
		t.Errorf("redelivery must reach the handler, got %d calls", stub.webhookCalls)
	}
}
