package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/application/usecase"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// InventoryHandler entradas y salidas manuales de stock (protegido).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// AddStock godoc
// @Summary      Agregar stock (compra / reposición)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.StockChangeRequest  true  "quantity, reason"
// @Success      200   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/add-stock [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Reason == "" {
		in.Reason = "Manual stock addition"
	}
	change, err := h.ledger.AddStock(c.UserContext(), inventory.AddStockInput{
		ProductID: c.Params("id"),
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		ActorID:   GetAdminID(c),
		Type:      entity.MovementTypePurchase,
	})
	if err != nil {
		return respondError(c, err)
	}
	p := change.Product
	return c.JSON(dto.StockChangeResponse{
		Message: fmt.Sprintf("stock actualizado. Nuevo stock: %s %s", p.CurrentStock.String(), p.Unit),
		Data:    usecase.ToStockLevel(p),
	})
}

// DeductStock godoc
// @Summary      Descontar stock (uso manual / ajuste)
// @Description  Con stock insuficiente responde 400 y no modifica nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.StockChangeRequest  true  "quantity, reason, type (usage por defecto)"
// @Success      200   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/deduct-stock [post]
func (h *InventoryHandler) DeductStock(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Reason == "" {
		in.Reason = "Manual stock deduction"
	}
	if in.Type == "" {
		in.Type = entity.MovementTypeUsage
	}
	if !entity.IsValidMovementType(in.Type) || in.Type == entity.MovementTypePurchase {
		return respondError(c, domain.ErrInvalidInput)
	}
	change, err := h.ledger.DeductStock(c.UserContext(), inventory.DeductStockInput{
		ProductID: c.Params("id"),
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		ActorID:   GetAdminID(c),
		Type:      in.Type,
	})
	if err != nil {
		return respondError(c, err)
	}
	p := change.Product
	out := dto.StockChangeResponse{
		Message: fmt.Sprintf("stock descontado. Restante: %s %s", p.CurrentStock.String(), p.Unit),
		Data:    usecase.ToStockLevel(p),
	}
	if p.IsLowStock() {
		out.Warning = fmt.Sprintf("⚠️ Alerta de stock bajo: %q solo tiene %s %s (umbral: %s)",
			p.Name, p.CurrentStock.String(), p.Unit, p.LowStockThreshold.String())
	}
	return c.JSON(out)
}
