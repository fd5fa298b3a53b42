package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-inventario-api/internal/application/auth"
	"github.com/jhoicas/salon-inventario-api/internal/application/booking"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/application/usecase"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	Ledger    *inventory.LedgerUseCase
	BookingUC *booking.UseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	bookingHandler := NewBookingHandler(deps.BookingUC)
	// Registrada antes del grupo protegido: las clientas reservan sin cuenta.
	api.Post("/bookings", bookingHandler.Create)

	requireAuth := AuthMiddleware(deps.JWTSecret)
	staff := RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)

	// Inventory (protegido). Las rutas fijas van antes que /:id.
	inv := api.Group("/inventory", requireAuth, staff)
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv.Get("/stats", productHandler.Stats)
	inv.Get("/low-stock", productHandler.LowStock)
	inv.Get("/report.pdf", productHandler.Report)
	inv.Get("/", productHandler.List)
	inv.Post("/", productHandler.Create)
	inv.Get("/:id", productHandler.Get)
	inv.Put("/:id", productHandler.Update)
	inv.Delete("/:id", RequireRole(entity.RoleSuperAdmin), productHandler.Delete)
	inv.Post("/:id/add-stock", inventoryHandler.AddStock)
	inv.Post("/:id/deduct-stock", inventoryHandler.DeductStock)
	inv.Get("/:id/history", productHandler.History)
	inv.Post("/:id/link-service", productHandler.LinkService)
	inv.Delete("/:id/unlink-service/:serviceId", productHandler.UnlinkService)

	// Bookings (protegido salvo Create)
	bookings := api.Group("/bookings", requireAuth, staff)
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/stats", bookingHandler.Stats)
	bookings.Get("/:id", bookingHandler.Get)
	bookings.Put("/:id/status", bookingHandler.UpdateStatus)
	bookings.Delete("/:id", bookingHandler.Delete)
}
