package repository

import (
	"context"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve los más recientes primero; movementType vacío no filtra, limit <= 0 sin límite.
	ListByProduct(ctx context.Context, productID, movementType string, limit int) ([]*entity.StockMovement, error)
	// ListChronological devuelve el historial completo en orden de registro.
	ListChronological(ctx context.Context, productID string) ([]entity.StockMovement, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*entity.StockMovement, error)
}
