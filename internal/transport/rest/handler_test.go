package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"turnex/config"
	"turnex/internal/availability"
	"turnex/internal/domain"
	"turnex/internal/service"
)

type fakeBookingService struct {
	err      error
	bookings []domain.Booking
}

func (s *fakeBookingService) Create(ctx context.Context, dto domain.CreateBookingDTO) (*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{
		ID:            uuid.New(),
		ServiceID:     dto.ServiceID,
		Date:          dto.Date,
		Time:          dto.Time,
		Duration:      30,
		CustomerName:  dto.CustomerName,
		CustomerEmail: dto.CustomerEmail,
		Status:        domain.BookingStatusConfirmed,
	}, nil
}

func (s *fakeBookingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{ID: id, Status: domain.BookingStatusConfirmed}, nil
}

func (s *fakeBookingService) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateBookingDTO) (*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{ID: id}, nil
}

func (s *fakeBookingService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *fakeBookingService) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	return s.bookings, len(s.bookings), s.err
}

func (s *fakeBookingService) ListByDay(ctx context.Context, dateKey string) ([]domain.Booking, error) {
	return s.bookings, s.err
}

type fakeAvailabilityService struct {
	err   error
	slots []string
}

func (s *fakeAvailabilityService) DaySlots(ctx context.Context, dateKey string, duration int) ([]string, error) {
	return s.slots, s.err
}

func (s *fakeAvailabilityService) Month(ctx context.Context, year, month, duration int) (map[string]availability.DayAvailability, error) {
	return map[string]availability.DayAvailability{}, s.err
}

type fakeAuthService struct {
	role domain.UserRole
	err  error
}

func (s *fakeAuthService) Register(ctx context.Context, dto domain.RegisterRequest) (int64, error) {
	return 0, s.err
}

func (s *fakeAuthService) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	return nil, s.err
}

func (s *fakeAuthService) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	return nil, s.err
}

func (s *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.err
}

func (s *fakeAuthService) ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error) {
	return 1, s.role, s.err
}

func newTestRouter(services *service.Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(services, zap.NewNop(), &config.Config{})
	router := gin.New()
	h.InitRoutes(router)
	return router
}

func perform(router *gin.Engine, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingEndpoint(t *testing.T) {
	valid := `{"service_id":1,"date":"2030-06-04","time":"10:00","customer_name":"Ada","customer_email":"ada@example.com"}`

	tests := []struct {
		name       string
		serviceErr error
		body       string
		wantStatus int
	}{
		{"created", nil, valid, http.StatusCreated},
		{"slot taken", domain.ErrSlotConflict, valid, http.StatusConflict},
		{"unknown service", domain.ErrNotFound, valid, http.StatusNotFound},
		{"rejected input", domain.ErrValidation, valid, http.StatusBadRequest},
		{"malformed body", nil, `{"service_id":`, http.StatusBadRequest},
		{"missing fields", nil, `{"service_id":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&service.Services{
				Booking: &fakeBookingService{err: tt.serviceErr},
			})

			rec := perform(router, http.MethodPost, "/api/v1/bookings/", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCreateBookingEndpoint_Body(t *testing.T) {
	router := newTestRouter(&service.Services{Booking: &fakeBookingService{}})

	rec := perform(router, http.MethodPost, "/api/v1/bookings/",
		`{"service_id":1,"date":"2030-06-04","time":"10:00","customer_name":"Ada","customer_email":"ada@example.com"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status string         `json:"status"`
		Data   domain.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q", envelope.Status)
	}
	if envelope.Data.Status != domain.BookingStatusConfirmed {
		t.Errorf("booking status = %s, want confirmed", envelope.Data.Status)
	}
	if envelope.Data.Time != "10:00" {
		t.Errorf("booking time = %s", envelope.Data.Time)
	}
}

func TestConflictResponseMessage(t *testing.T) {
	router := newTestRouter(&service.Services{
		Booking: &fakeBookingService{err: domain.ErrSlotConflict},
	})

	rec := perform(router, http.MethodPost, "/api/v1/bookings/",
		`{"service_id":1,"date":"2030-06-04","time":"10:00","customer_name":"Ada","customer_email":"ada@example.com"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var envelope errorResponseBody
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Message != "time not available" {
		t.Errorf("message = %q, want the generic conflict wording", envelope.Message)
	}
}

func TestDayAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter(&service.Services{
		Availability: &fakeAvailabilityService{slots: []string{"09:00", "09:30"}},
	})

	rec := perform(router, http.MethodGet, "/api/v1/availability/day?date=2030-06-04", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Date  string   `json:"date"`
			Slots []string `json:"slots"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.Date != "2030-06-04" || len(envelope.Data.Slots) != 2 {
		t.Errorf("unexpected payload: %+v", envelope.Data)
	}

	// Missing date and malformed duration fail before the service is asked.
	if rec := perform(router, http.MethodGet, "/api/v1/availability/day", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing date: status = %d, want 400", rec.Code)
	}
	if rec := perform(router, http.MethodGet, "/api/v1/availability/day?date=2030-06-04&duration=abc", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed duration: status = %d, want 400", rec.Code)
	}
}

func TestDayAvailabilityEndpoint_ValidationError(t *testing.T) {
	router := newTestRouter(&service.Services{
		Availability: &fakeAvailabilityService{err: domain.ErrValidation},
	})

	rec := perform(router, http.MethodGet, "/api/v1/availability/day?date=garbage", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateBookingEndpoint_AuthAndTransition(t *testing.T) {
	id := uuid.New().String()
	body := `{"status":"completed"}`

	// No token.
	router := newTestRouter(&service.Services{
		Auth:    &fakeAuthService{role: domain.UserRoleAdmin},
		Booking: &fakeBookingService{},
	})
	if rec := perform(router, http.MethodPut, "/api/v1/bookings/"+id, body, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	// Customer token on an admin route.
	router = newTestRouter(&service.Services{
		Auth:    &fakeAuthService{role: domain.UserRoleCustomer},
		Booking: &fakeBookingService{},
	})
	headers := map[string]string{"Authorization": "Bearer token"}
	if rec := perform(router, http.MethodPut, "/api/v1/bookings/"+id, body, headers); rec.Code != http.StatusForbidden {
		t.Errorf("customer token: status = %d, want 403", rec.Code)
	}

	// Rejected transition maps to 422.
	router = newTestRouter(&service.Services{
		Auth:    &fakeAuthService{role: domain.UserRoleAdmin},
		Booking: &fakeBookingService{err: domain.ErrInvalidTransition},
	})
	if rec := perform(router, http.MethodPut, "/api/v1/bookings/"+id, body, headers); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad transition: status = %d, want 422", rec.Code)
	}

	// Malformed id never reaches the service.
	if rec := perform(router, http.MethodPut, "/api/v1/bookings/not-a-uuid", body, headers); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", rec.Code)
	}
}

func TestBookingsByDayEndpoint(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer token"}
	router := newTestRouter(&service.Services{
		Auth: &fakeAuthService{role: domain.UserRoleAdmin},
		Booking: &fakeBookingService{bookings: []domain.Booking{
			{Time: "09:00"}, {Time: "10:00"},
		}},
	})

	rec := perform(router, http.MethodGet, "/api/v1/bookings/day?date=2030-06-04", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []domain.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Errorf("got %d bookings, want 2", len(envelope.Data))
	}

	if rec := perform(router, http.MethodGet, "/api/v1/bookings/day", "", headers); rec.Code != http.StatusBadRequest {
		t.Errorf("missing date: status = %d, want 400", rec.Code)
	}
}
