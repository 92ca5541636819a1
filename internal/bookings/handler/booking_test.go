package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"massbook/pkg/config"
	apperrors "massbook/pkg/errors"
	"massbook/pkg/logger"
	"massbook/pkg/model"
)

type mockService struct {
	createFn             func(ctx context.Context, b *model.Booking) error
	getByIDFn            func(ctx context.Context, id string) (*model.Booking, error)
	listFn               func(ctx context.Context, status string, limit int, offset int64) ([]*model.Booking, error)
	handlePaymentEventFn func(ctx context.Context, event *model.PaymentEvent) error
}

func (m *mockService) Create(ctx context.Context, b *model.Booking) error {
	return m.createFn(ctx, b)
}

func (m *mockService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockService) List(ctx context.Context, status string, limit int, offset int64) ([]*model.Booking, error) {
	return m.listFn(ctx, status, limit, offset)
}

func (m *mockService) HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) error {
	return m.handlePaymentEventFn(ctx, event)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:  logger.ERROR,
			Format: logger.TEXT,
			Output: io.Discard,
		}),
	}
}

func newTestRouter(svc *mockService, cfg *config.Config) *httprouter.Router {
	router := httprouter.New()
	h := NewBookingHandler(svc, cfg)
	h.RegisterRoutes(router)
	h.RegisterWebhookRoutes(router)
	return router
}

func TestCreateReturns201(t *testing.T) {
	svc := &mockService{
		createFn: func(_ context.Context, b *model.Booking) error {
			b.ID = "65f000000000000000000001"
			b.Status = model.StatusPending
			return nil
		},
	}
	router := newTestRouter(svc, testConfig())

	body := `{"paymentId":"pay_1","name":"Jane","email":"jane@example.com","amount":5000,"startDate":"2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created model.Booking
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected server-assigned id in response")
	}
	if created.Status != model.StatusPending {
		t.Errorf("expected status pending, got %q", created.Status)
	}
}

func TestCreateStripsClientAssignedFields(t *testing.T) {
	var received *model.Booking
	svc := &mockService{
		createFn: func(_ context.Context, b *model.Booking) error {
			received = b
			return nil
		},
	}
	router := newTestRouter(svc, testConfig())

	body := `{"id":"65f0000000000000000000ff","status":"paid","paymentId":"pay_1","name":"Jane","email":"jane@example.com","amount":5000,"startDate":"2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if received == nil {
		t.Fatal("service never called")
	}
	if received.ID != "" {
		t.Errorf("client-supplied id accepted: %q", received.ID)
	}
	if received.Status != "" {
		t.Errorf("client-supplied status accepted: %q", received.Status)
	}
}

func TestCreateInvalidJSON(t *testing.T) {
	svc := &mockService{
		createFn: func(_ context.Context, b *model.Booking) error {
			t.Error("service must not be called for malformed JSON")
			return nil
		},
	}
	router := newTestRouter(svc, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if _, ok := resp["message"]; !ok {
		t.Error("error response missing message field")
	}
}

func TestCreateValidationErrorMapsTo400(t *testing.T) {
	svc := &mockService{
		createFn: func(_ context.Context, b *model.Booking) error {
			return apperrors.Validation("email: must be a valid email address", nil)
		},
	}
	router := newTestRouter(svc, testConfig())

	body := `{"paymentId":"pay_1","name":"Jane","email":"nope","amount":5000,"startDate":"2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected validator message in response")
	}
}

func TestGetByID(t *testing.T) {
	svc := &mockService{
		getByIDFn: func(_ context.Context, id string) (*model.Booking, error) {
			if id != "65f000000000000000000001" {
				t.Errorf("unexpected id %q", id)
			}
			return &model.Booking{ID: id, RefID: "ref-1"}, nil
		},
	}
	router := newTestRouter(svc, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/id/65f000000000000000000001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := &mockService{
		getByIDFn: func(_ context.Context, id string) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}
	router := newTestRouter(svc, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/id/65f000000000000000000002", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetAllReturnsBareArray(t *testing.T) {
	var gotLimit int
	svc := &mockService{
		listFn: func(_ context.Context, status string, limit int, offset int64) ([]*model.Booking, error) {
			gotLimit = limit
			return []*model.Booking{{RefID: "a", PaymentID: "PAY1"}}, nil
		},
	}
	router := newTestRouter(svc, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotLimit != 0 {
		t.Errorf("unparameterized query must not be truncated, got limit %d", gotLimit)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("response is not a bare array: %v", err)
	}
	if len(bookings) != 1 || bookings[0].PaymentID != "PAY1" {
		t.Errorf("unexpected array contents: %+v", bookings)
	}
}

func TestGetAllPassesFiltersThrough(t *testing.T) {
	var gotStatus string
	var gotLimit int
	var gotOffset int64
	svc := &mockService{
		listFn: func(_ context.Context, status string, limit int, offset int64) ([]*model.Booking, error) {
			gotStatus, gotLimit, gotOffset = status, limit, offset
			return []*model.Booking{{RefID: "a"}}, nil
		},
	}
	router := newTestRouter(svc, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=pending&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotStatus != model.StatusPending {
		t.Errorf("expected status pending, got %q", gotStatus)
	}
	if gotLimit != 5 || gotOffset != 10 {
		t.Errorf("pagination not passed through: limit=%d offset=%d", gotLimit, gotOffset)
	}
}

func TestGetAllUnknownStatusMatchesNothing(t *testing.T) {
	var gotStatus string
	svc := &mockService{
		listFn: func(_ context.Context, status string, limit int, offset int64) ([]*model.Booking, error) {
			gotStatus = status
			return nil, nil
		},
	}
	router := newTestRouter(svc, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=refunded", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown status values filter, not fail: got %d", rec.Code)
	}
	if gotStatus != "refunded" {
		t.Errorf("filter must reach the store verbatim, got %q", gotStatus)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestGetAllEmptyResult(t *testing.T) {
	svc := &mockService{
		listFn: func(_ context.Context, status string, limit int, offset int64) ([]*model.Booking, error) {
			return nil, nil
		},
	}
	router := newTestRouter(svc, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}
