package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		NameAr:            p.NameAr,
		Category:          p.Category,
		Gender:            p.Gender,
		Unit:              p.Unit,
		CurrentStock:      p.CurrentStock,
		LowStockThreshold: p.LowStockThreshold,
		CostPerUnit:       p.CostPerUnit,
		Supplier:          dto.SupplierDTO{Name: p.Supplier.Name, Contact: p.Supplier.Contact},
		LinkedServices:    toLinkedServiceDTOs(p.LinkedServices),
		Notes:             p.Notes,
		IsActive:          p.IsActive,
		IsLowStock:        p.IsLowStock(),
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	for _, m := range p.StockMovements {
		out.StockMovements = append(out.StockMovements, toMovementDTO(m))
	}
	return out
}

// ToStockLevel saldo actual del producto para respuestas del ledger.
func ToStockLevel(p *entity.Product) dto.StockLevelDTO {
	return dto.StockLevelDTO{
		ProductID:    p.ID,
		Name:         p.Name,
		CurrentStock: p.CurrentStock,
		Unit:         p.Unit,
		IsLowStock:   p.IsLowStock(),
	}
}

func toMovementDTO(m entity.StockMovement) dto.StockMovementDTO {
	return dto.StockMovementDTO{
		ID:          m.ID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		BookingID:   m.BookingID,
		PerformedBy: m.PerformedBy,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

func toLinkedServiceDTOs(links []entity.LinkedService) []dto.LinkedServiceDTO {
	out := make([]dto.LinkedServiceDTO, 0, len(links))
	for _, l := range links {
		out = append(out, dto.LinkedServiceDTO{ServiceID: l.ServiceID, ServiceName: l.ServiceName, UsagePerSession: l.UsagePerSession})
	}
	return out
}

// toLinkedServices valida los vínculos de entrada; usage cero pasa a 1 y un servicio repetido es inválido.
func toLinkedServices(in []dto.LinkedServiceDTO) ([]entity.LinkedService, error) {
	seen := make(map[string]bool, len(in))
	out := make([]entity.LinkedService, 0, len(in))
	for _, l := range in {
		if l.ServiceID == "" || seen[l.ServiceID] || l.UsagePerSession.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		seen[l.ServiceID] = true
		usage := l.UsagePerSession
		if usage.IsZero() {
			usage = decimal.NewFromInt(1)
		}
		out = append(out, entity.LinkedService{ServiceID: l.ServiceID, ServiceName: l.ServiceName, UsagePerSession: usage})
	}
	return out, nil
}
