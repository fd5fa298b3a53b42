package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/usecase"
)

// ProductHandler catálogo de productos del inventario (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.Category == "" || in.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, category y unit son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetAdminID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "producto agregado al inventario", "data": out})
}

// List godoc
// @Summary      Listar productos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Param        gender    query  string  false  "women | men (incluye both)"
// @Param        lowStock  query  bool    false  "Solo stock bajo"
// @Param        search    query  string  false  "Nombre o nombre árabe"
// @Param        isActive  query  bool    false  "Activo"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/inventory [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := dto.ProductListFilter{
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
		Search:   c.Query("search"),
		LowStock: c.Query("lowStock") == "true",
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener producto con historial
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (no modifica stock)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto actualizado", "data": out})
}

// Delete godoc
// @Summary      Eliminar producto (super-admin)
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto eliminado del inventario"})
}

// LinkService godoc
// @Summary      Vincular servicio a producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.LinkServiceRequest  true  "serviceId, serviceName, usagePerSession"
// @Success      200   {object}  dto.LinkServiceResponse
// @Router       /api/inventory/{id}/link-service [post]
func (h *ProductHandler) LinkService(c *fiber.Ctx) error {
	var in dto.LinkServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	links, updated, err := h.uc.LinkService(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	msg := "servicio vinculado al producto"
	if updated {
		msg = "vínculo de servicio actualizado"
	}
	return c.JSON(dto.LinkServiceResponse{Message: msg, Data: links})
}

// UnlinkService godoc
// @Summary      Desvincular servicio de producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del producto"
// @Param        serviceId  path  string  true  "ID del servicio"
// @Success      200  {object}  dto.LinkServiceResponse
// @Router       /api/inventory/{id}/unlink-service/{serviceId} [delete]
func (h *ProductHandler) UnlinkService(c *fiber.Ctx) error {
	links, err := h.uc.UnlinkService(c.UserContext(), c.Params("id"), c.Params("serviceId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LinkServiceResponse{Message: "servicio desvinculado del producto", Data: links})
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Router       /api/inventory/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStockAlerts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Resumen del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsResponse
// @Router       /api/inventory/stats [get]
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de stock en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/inventory/report.pdf [get]
func (h *ProductHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.StockReportPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(pdf)
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        type   query  string  false  "purchase | usage | adjustment | return | expired"
// @Param        limit  query  int     false  "Máximo de movimientos (50 por defecto)"
// @Success      200  {object}  dto.StockHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/history [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), c.Params("id"), c.Query("type"), c.QueryInt("limit", usecase.DefaultHistoryLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
