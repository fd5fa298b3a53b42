package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo ledger append-only sobre la tabla stock_movements; seq fija el orden de registro.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, stock_before, stock_after,
	COALESCE(booking_id, ''), performed_by, reason, created_at`

func scanMovement(row pgx.Row) (entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.StockBefore, &m.StockAfter,
		&m.BookingID, &m.PerformedBy, &m.Reason, &m.CreatedAt)
	return m, err
}

// Create inserta el movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	var bookingID any
	if m.BookingID != "" {
		bookingID = m.BookingID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, type, quantity, stock_before, stock_after, booking_id, performed_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.StockBefore, m.StockAfter, bookingID, m.PerformedBy, m.Reason, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID, movementType string, limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1 AND ($2::text = '' OR type = $2::text)
		ORDER BY seq DESC`
	args := []any{productID, movementType}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	return r.listPtr(ctx, query, args...)
}

// ListChronological historial completo en orden de registro.
func (r *StockMovementRepo) ListChronological(ctx context.Context, productID string) ([]entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY seq`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByBooking movimientos generados por una reserva.
func (r *StockMovementRepo) ListByBooking(ctx context.Context, bookingID string) ([]*entity.StockMovement, error) {
	return r.listPtr(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE booking_id = $1 ORDER BY seq`, bookingID)
}

func (r *StockMovementRepo) listPtr(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
