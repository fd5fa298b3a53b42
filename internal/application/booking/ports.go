package booking

import (
	"context"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con el repositorio de reservas atado a ella.
type TxRunner interface {
	RunBooking(ctx context.Context, fn func(bookingRepo repository.BookingRepository) error) error
}

// InventoryDeducter descuento automático de inventario al completar una reserva.
type InventoryDeducter interface {
	AutoDeductForBooking(ctx context.Context, bookingID, actorID string) *dto.AutoDeductResult
}
