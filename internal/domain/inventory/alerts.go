package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// Niveles de alerta de stock.
const (
	LevelOK         = "ok"
	LevelLow        = "low"
	LevelCritical   = "critical"
	LevelOutOfStock = "out_of_stock"
)

var two = decimal.NewFromInt(2)

// StockLevel clasifica el producto respecto a su umbral:
// agotado (0), crítico (0 < s <= t/2), bajo (t/2 < s <= t), ok en otro caso.
func StockLevel(p *entity.Product) string {
	switch {
	case p.CurrentStock.IsZero():
		return LevelOutOfStock
	case !p.IsLowStock():
		return LevelOK
	case p.CurrentStock.LessThanOrEqual(p.LowStockThreshold.Div(two)):
		return LevelCritical
	default:
		return LevelLow
	}
}

// StockValue valor del inventario: Σ stock × costo unitario, redondeado a 2 decimales.
func StockValue(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.CurrentStock.Mul(p.CostPerUnit))
	}
	return total.Round(2)
}
