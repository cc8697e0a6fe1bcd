package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"turnex/internal/availability"
	"turnex/internal/domain"
)

// fakeBookingRepo mirrors the real repository's contract, including the
// unique-slot guard: inserting a slot another booking holds fails with
// ErrSlotConflict.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]domain.Booking
	slots    map[string]uuid.UUID // "date slot" -> booking id
	listErr  error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]domain.Booking),
		slots:    make(map[string]uuid.UUID),
	}
}

func slotKey(date, slot string) string { return date + " " + slot }

func (r *fakeBookingRepo) Create(ctx context.Context, booking domain.Booking, slots []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range slots {
		if _, taken := r.slots[slotKey(booking.Date, s)]; taken {
			return domain.ErrSlotConflict
		}
	}
	for _, s := range slots {
		r.slots[slotKey(booking.Date, s)] = booking.ID
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking domain.Booking, slots []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return domain.ErrNotFound
	}

	for key, owner := range r.slots {
		if owner == booking.ID {
			delete(r.slots, key)
		}
	}
	for _, s := range slots {
		if _, taken := r.slots[slotKey(booking.Date, s)]; taken {
			return domain.ErrSlotConflict
		}
	}
	for _, s := range slots {
		r.slots[slotKey(booking.Date, s)] = booking.ID
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []domain.Booking
	for _, b := range r.bookings {
		if filter.Date != nil && b.Date != *filter.Date {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.CustomerEmail != nil && b.CustomerEmail != *filter.CustomerEmail {
			continue
		}
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date < all[j].Date
		}
		return all[i].Time < all[j].Time
	})
	return all, len(all), nil
}

func (r *fakeBookingRepo) ListActiveByDate(ctx context.Context, dateKey string) ([]domain.Booking, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Booking
	for _, b := range r.bookings {
		if b.Date == dateKey && b.Status.IsActive() {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Time < result[j].Time })
	return result, nil
}

func (r *fakeBookingRepo) CountActiveByService(ctx context.Context, serviceID int64, fromDate string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if b.ServiceID == serviceID && b.Date >= fromDate && b.Status.IsActive() {
			count++
		}
	}
	return count, nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	nextID   int64
	services map[int64]domain.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[int64]domain.Service)}
}

func (r *fakeServiceRepo) add(svc domain.Service) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	svc.ID = r.nextID
	r.services[svc.ID] = svc
	return svc.ID
}

func (r *fakeServiceRepo) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	return r.add(domain.Service{
		Name:        dto.Name,
		Description: dto.Description,
		Duration:    dto.Duration,
		Price:       dto.Price,
	}), nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return domain.ErrNotFound
	}
	if dto.Name != nil {
		svc.Name = *dto.Name
	}
	if dto.Description != nil {
		svc.Description = *dto.Description
	}
	if dto.Duration != nil {
		svc.Duration = *dto.Duration
	}
	if dto.Price != nil {
		svc.Price = *dto.Price
	}
	r.services[id] = svc
	return nil
}

func (r *fakeServiceRepo) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return domain.ErrNotFound
	}
	svc.ImageURL = imageURL
	r.services[id] = svc
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.Service
	for _, svc := range r.services {
		all = append(all, svc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

type fakeScheduleRepo struct {
	mu  sync.Mutex
	cfg *domain.ScheduleConfig
}

func (r *fakeScheduleRepo) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg == nil {
		return nil, nil
	}
	cfg := *r.cfg
	return &cfg, nil
}

func (r *fakeScheduleRepo) Save(ctx context.Context, cfg domain.ScheduleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = &cfg
	return nil
}

// futureWorkingDate returns a date key at least a week out that falls on a
// working day of the default configuration.
func futureWorkingDate() string {
	d := time.Now().AddDate(0, 0, 7)
	for d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return availability.DateKey(d)
}
