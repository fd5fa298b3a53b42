package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// MovementInput datos de un cambio de stock sobre un producto ya cargado.
type MovementInput struct {
	Type        string
	Quantity    decimal.Decimal // siempre positivo; el signo lo pone la operación
	Reason      string
	PerformedBy string
	BookingID   string
	At          time.Time
}

// ApplyAdd suma stock al producto y devuelve el movimiento a registrar.
// Muta product.CurrentStock; no toca la persistencia.
func ApplyAdd(product *entity.Product, in MovementInput) (*entity.StockMovement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.IsValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	before := product.CurrentStock
	product.CurrentStock = before.Add(in.Quantity)
	return &entity.StockMovement{
		ProductID:   product.ID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		StockBefore: before,
		StockAfter:  product.CurrentStock,
		BookingID:   in.BookingID,
		PerformedBy: in.PerformedBy,
		Reason:      in.Reason,
		CreatedAt:   in.At,
	}, nil
}

// ApplyDeduct descuenta stock del producto y devuelve el movimiento a registrar.
// Si el stock no alcanza devuelve *domain.InsufficientStockError y el producto queda intacto.
func ApplyDeduct(product *entity.Product, in MovementInput) (*entity.StockMovement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.IsValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if product.CurrentStock.LessThan(in.Quantity) {
		return nil, &domain.InsufficientStockError{
			ProductName: product.Name,
			Available:   product.CurrentStock,
			Required:    in.Quantity,
		}
	}
	before := product.CurrentStock
	product.CurrentStock = before.Sub(in.Quantity)
	return &entity.StockMovement{
		ProductID:   product.ID,
		Type:        in.Type,
		Quantity:    in.Quantity.Neg(),
		StockBefore: before,
		StockAfter:  product.CurrentStock,
		BookingID:   in.BookingID,
		PerformedBy: in.PerformedBy,
		Reason:      in.Reason,
		CreatedAt:   in.At,
	}, nil
}

// VerifyChain comprueba el invariante del ledger sobre un historial en orden cronológico:
// cada movimiento cuadra consigo mismo, encadena con el anterior y el último coincide con el saldo.
func VerifyChain(movements []entity.StockMovement, currentStock decimal.Decimal) bool {
	for i, m := range movements {
		if !m.StockBefore.Add(m.Quantity).Equal(m.StockAfter) {
			return false
		}
		if i > 0 && !movements[i-1].StockAfter.Equal(m.StockBefore) {
			return false
		}
	}
	if len(movements) == 0 {
		return currentStock.IsZero()
	}
	return movements[len(movements)-1].StockAfter.Equal(currentStock)
}
