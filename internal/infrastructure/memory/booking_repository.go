package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// BookingRepository implementación en memoria de repository.BookingRepository.
type BookingRepository struct {
	s      *Store
	locked bool
}

var _ repository.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	defer r.s.lock(r.locked)()
	if _, ok := r.s.bookings[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.bookings[b.ID] = copyBooking(b)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	defer r.s.lock(r.locked)()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(b), nil
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, id string) (*entity.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	defer r.s.lock(r.locked)()
	b, ok := r.s.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = at
	return nil
}

// List más recientes primero.
func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	defer r.s.lock(r.locked)()
	all := make([]*entity.Booking, 0, len(r.s.bookings))
	for _, b := range r.s.bookings {
		all = append(all, copyBooking(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(r.locked)()
	if _, ok := r.s.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

func (r *BookingRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	defer r.s.lock(r.locked)()
	n := 0
	for _, b := range r.s.bookings {
		if !b.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepository) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	defer r.s.lock(r.locked)()
	total := decimal.Zero
	for _, b := range r.s.bookings {
		if b.Status == entity.BookingStatusCompleted {
			total = total.Add(b.TotalAmount)
		}
	}
	return total, nil
}
