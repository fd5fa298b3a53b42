package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// BookingReader lectura de reservas; es todo lo que necesita el motor de inventario.
type BookingReader interface {
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
}

// BookingRepository define el puerto de persistencia para Booking.
type BookingRepository interface {
	BookingReader
	Create(ctx context.Context, booking *entity.Booking) error
	// GetForUpdate bloquea la reserva (SELECT FOR UPDATE) para la transición de estado.
	GetForUpdate(ctx context.Context, id string) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Delete(ctx context.Context, id string) error
	// CountCreatedSince cuenta reservas creadas desde since; zero time cuenta todas.
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
}
