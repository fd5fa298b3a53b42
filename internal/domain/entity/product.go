package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas de producto.
var ProductCategories = []string{
	"Hair Care",
	"Skin Care",
	"Nail Care",
	"Waxing & Threading",
	"Massage Oils",
	"Grooming",
	"Equipment",
	"Disposables",
	"Other",
}

// Unidades de medida válidas.
var ProductUnits = []string{"ml", "g", "piece", "bottle", "box", "pack", "litre", "kg"}

// Público al que aplica el producto.
const (
	GenderWomen = "women"
	GenderMen   = "men"
	GenderBoth  = "both"
)

// Supplier datos de contacto del proveedor.
type Supplier struct {
	Name    string
	Contact string
}

// LinkedService indica cuánto producto consume una sesión de un servicio reservable.
type LinkedService struct {
	ServiceID       string
	ServiceName     string
	UsagePerSession decimal.Decimal
}

// Product representa un producto del inventario del salón.
// CurrentStock solo cambia vía el ledger (AddStock/DeductStock); Version protege contra lost updates.
type Product struct {
	ID                string
	Name              string
	NameAr            string
	Category          string
	Gender            string
	Unit              string
	CurrentStock      decimal.Decimal
	LowStockThreshold decimal.Decimal
	CostPerUnit       decimal.Decimal
	Supplier          Supplier
	LinkedServices    []LinkedService
	Notes             string
	IsActive          bool
	StockMovements    []StockMovement // historial; solo se carga en lecturas de detalle
	CreatedBy         string
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock se deriva en cada lectura; nunca se persiste.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.LowStockThreshold)
}

// IsOutOfStock true si no queda stock.
func (p *Product) IsOutOfStock() bool {
	return p.CurrentStock.IsZero()
}

// LinkFor devuelve la configuración de uso para el servicio, o nil si no está vinculado.
func (p *Product) LinkFor(serviceID string) *LinkedService {
	for i := range p.LinkedServices {
		if p.LinkedServices[i].ServiceID == serviceID {
			return &p.LinkedServices[i]
		}
	}
	return nil
}

// IsValidCategory valida la categoría contra el catálogo fijo.
func IsValidCategory(c string) bool {
	return contains(ProductCategories, c)
}

// IsValidUnit valida la unidad de medida.
func IsValidUnit(u string) bool {
	return contains(ProductUnits, u)
}

// IsValidGender valida el público objetivo.
func IsValidGender(g string) bool {
	return g == GenderWomen || g == GenderMen || g == GenderBoth
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
