package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"turnex/internal/domain"
)

func newCatalogTestEnv() (*CatalogServiceImpl, *fakeBookingRepo, *fakeServiceRepo) {
	bookingRepo := newFakeBookingRepo()
	serviceRepo := newFakeServiceRepo()
	svc := NewCatalogService(serviceRepo, bookingRepo, nil, zap.NewNop())
	return svc, bookingRepo, serviceRepo
}

func TestCatalogCreate_DurationValidation(t *testing.T) {
	svc, _, _ := newCatalogTestEnv()

	tests := []struct {
		name     string
		duration int
		wantErr  bool
	}{
		{"thirty minutes", 30, false},
		{"two hours", 120, false},
		{"not a grid multiple", 45, true},
		{"zero", 0, true},
		{"negative", -30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), domain.CreateServiceDTO{
				Name:     "Massage",
				Duration: tt.duration,
				Price:    50,
			})
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCatalogDelete_GuardedByBookings(t *testing.T) {
	svc, bookings, services := newCatalogTestEnv()
	serviceID := services.add(domain.Service{Name: "Massage", Duration: 60, Price: 50})

	date := futureWorkingDate()
	bookingID := uuid.New()
	if err := bookings.Create(context.Background(), domain.Booking{
		ID:          bookingID,
		ServiceID:   serviceID,
		ServiceName: "Massage",
		Date:        date,
		Time:        "10:00",
		Duration:    60,
		Status:      domain.BookingStatusConfirmed,
	}, []string{"10:00", "10:30"}); err != nil {
		t.Fatalf("seeding booking: %v", err)
	}

	if err := svc.Delete(context.Background(), serviceID); !errors.Is(err, domain.ErrServiceHasBookings) {
		t.Fatalf("delete with upcoming bookings: got %v, want ErrServiceHasBookings", err)
	}

	// A cancelled booking no longer guards the service.
	for id, b := range bookings.bookings {
		b.Status = domain.BookingStatusCancelled
		bookings.bookings[id] = b
	}
	if err := svc.Delete(context.Background(), serviceID); err != nil {
		t.Fatalf("delete after cancellation: %v", err)
	}

	// The cancelled booking survives the deletion with its snapshot; history
	// is kept, only the catalog entry goes.
	kept, err := bookings.GetByID(context.Background(), bookingID)
	if err != nil || kept == nil {
		t.Fatalf("booking row must outlive the service: %v", err)
	}
	if kept.ServiceName != "Massage" || kept.Duration != 60 {
		t.Errorf("snapshot lost: name=%q duration=%d", kept.ServiceName, kept.Duration)
	}

	if err := svc.Delete(context.Background(), serviceID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestCatalogDelete_PastBookingsDoNotGuard(t *testing.T) {
	svc, bookings, services := newCatalogTestEnv()
	serviceID := services.add(domain.Service{Name: "Massage", Duration: 60, Price: 50})

	if err := bookings.Create(context.Background(), domain.Booking{
		ServiceID: serviceID,
		Date:      "2020-01-06",
		Time:      "10:00",
		Duration:  60,
		Status:    domain.BookingStatusConfirmed,
	}, nil); err != nil {
		t.Fatalf("seeding booking: %v", err)
	}

	if err := svc.Delete(context.Background(), serviceID); err != nil {
		t.Errorf("past bookings must not block deletion: %v", err)
	}
}

func TestCatalogUpdate(t *testing.T) {
	svc, _, services := newCatalogTestEnv()
	serviceID := services.add(domain.Service{Name: "Massage", Duration: 60, Price: 50})

	badDuration := 45
	if err := svc.Update(context.Background(), serviceID, domain.UpdateServiceDTO{Duration: &badDuration}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("off-grid duration: got %v, want ErrValidation", err)
	}

	goodDuration := 90
	if err := svc.Update(context.Background(), serviceID, domain.UpdateServiceDTO{Duration: &goodDuration}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := svc.GetByID(context.Background(), serviceID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Duration != 90 {
		t.Errorf("duration = %d, want 90", got.Duration)
	}

	if err := svc.Update(context.Background(), 999, domain.UpdateServiceDTO{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("updating unknown service: got %v, want ErrNotFound", err)
	}
}

func TestCatalogUploadImage_RequiresStorage(t *testing.T) {
	svc, _, services := newCatalogTestEnv()
	serviceID := services.add(domain.Service{Name: "Massage", Duration: 60, Price: 50})

	if _, err := svc.UploadImage(context.Background(), serviceID, []byte("data"), "a.png"); err == nil {
		t.Error("uploading without configured storage must fail")
	}
}
