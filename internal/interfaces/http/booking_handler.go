package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-inventario-api/internal/application/booking"
	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
)

// BookingHandler reservas. Create es público; el resto requiere token.
type BookingHandler struct {
	uc *booking.UseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *booking.UseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reserva
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Datos de la reserva"
// @Success      201   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reservas
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (20 por defecto, máximo 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.BookingResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	page.DefaultPage()
	return c.JSON(fiber.Map{
		"data": out,
		"page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Get godoc
// @Summary      Obtener reserva
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.BookingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la reserva
// @Description  Al pasar a completed se descuenta el inventario vinculado y el resumen viene en "inventory".
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la reserva"
// @Param        body  body  dto.UpdateBookingStatusRequest  true  "status"
// @Success      200   {object}  dto.BookingStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status, GetAdminID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reserva
// @Tags         bookings
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva eliminada"})
}

// Stats godoc
// @Summary      Estadísticas de reservas
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BookingStatsResponse
// @Router       /api/bookings/stats [get]
func (h *BookingHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
