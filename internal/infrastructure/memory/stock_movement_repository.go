package memory

import (
	"context"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// StockMovementRepository ledger en memoria; el orden del slice es el orden de registro.
type StockMovementRepository struct {
	s      *Store
	locked bool
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Create(ctx context.Context, m *entity.StockMovement) error {
	defer r.s.lock(r.locked)()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID, movementType string, limit int) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.locked)()
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.ProductID != productID || (movementType != "" && m.Type != movementType) {
			continue
		}
		out = append(out, &m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *StockMovementRepository) ListChronological(ctx context.Context, productID string) ([]entity.StockMovement, error) {
	defer r.s.lock(r.locked)()
	var out []entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *StockMovementRepository) ListByBooking(ctx context.Context, bookingID string) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.locked)()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.BookingID == bookingID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}
