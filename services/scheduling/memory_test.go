package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingRepo "servana/database/repository/booking"
	providerRepo "servana/database/repository/provider"
	"servana/models"
)

// In-memory repository and publisher fakes backing the service tests.

type memProviderRepo struct {
	mu        sync.RWMutex
	providers map[string]models.Provider
}

func newMemProviderRepo(providers ...models.Provider) *memProviderRepo {
	repo := &memProviderRepo{providers: make(map[string]models.Provider)}
	for _, p := range providers {
		repo.providers[p.ID] = p
	}
	return repo
}

func (r *memProviderRepo) Create(_ context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.ID] = *provider
	return nil
}

func (r *memProviderRepo) GetByID(_ context.Context, providerID string) (*models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[providerID]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	copied := p
	return &copied, nil
}

func (r *memProviderRepo) Update(_ context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[provider.ID]; !ok {
		return providerRepo.ErrProviderNotFound
	}
	r.providers[provider.ID] = *provider
	return nil
}

type memBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := b
	return &copied, nil
}

func (r *memBookingRepo) UpdateFromStatus(_ context.Context, booking *models.Booking, expected models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[booking.ID]
	if !ok || current.Status != expected {
		return bookingRepo.ErrBookingStale
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memBookingRepo) ActiveByProviderDate(_ context.Context, providerID, date string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.Date == date && b.Status.IsActive() {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (r *memBookingRepo) List(_ context.Context, f bookingRepo.ListFilter) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if f.ProviderID != "" && b.ProviderID != f.ProviderID {
			continue
		}
		if f.ClientID != "" && b.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.FromDate != "" && b.Date < f.FromDate {
			continue
		}
		if f.ToDate != "" && b.Date > f.ToDate {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

func (r *memBookingRepo) ConfirmedEndedBefore(_ context.Context, now time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status != models.StatusConfirmed {
			continue
		}
		end, err := b.Interval().EndTime(time.Local)
		if err != nil {
			continue
		}
		if !end.After(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

type memPublisher struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (p *memPublisher) Publish(_ context.Context, event models.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *memPublisher) byType(eventType string) []models.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []models.BookingEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
