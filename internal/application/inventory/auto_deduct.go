package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// StockDeductor lo que el descuento automático necesita del ledger.
type StockDeductor interface {
	DeductStock(ctx context.Context, in DeductStockInput) (*StockChange, error)
}

// AutoDeductUseCase descuenta el consumo de productos al completar una reserva.
// Un fallo en un producto se registra como omitido y no detiene el resto.
type AutoDeductUseCase struct {
	bookings repository.BookingReader
	products repository.ProductRepository
	ledger   StockDeductor
	events   EventPublisher
	workers  int
	log      zerolog.Logger
}

// NewAutoDeductUseCase construye el caso de uso. workers limita los productos descontados en paralelo.
func NewAutoDeductUseCase(
	bookings repository.BookingReader,
	products repository.ProductRepository,
	ledger StockDeductor,
	events EventPublisher,
	workers int,
	log zerolog.Logger,
) *AutoDeductUseCase {
	if workers < 1 {
		workers = 1
	}
	return &AutoDeductUseCase{
		bookings: bookings,
		products: products,
		ledger:   ledger,
		events:   events,
		workers:  workers,
		log:      log,
	}
}

type deductTask struct {
	product *entity.Product
	usage   decimal.Decimal
}

// AutoDeductForBooking recorre las líneas de la reserva, resuelve los productos vinculados
// y descuenta usagePerSession × cantidad de cada uno.
// Los resultados salen en orden de línea y luego de producto aunque los descuentos corran en paralelo.
func (uc *AutoDeductUseCase) AutoDeductForBooking(ctx context.Context, bookingID, actorID string) *dto.AutoDeductResult {
	booking, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		uc.log.Error().Err(err).Str("booking_id", bookingID).Msg("descuento automático: error leyendo reserva")
		return failedDeduction(err.Error())
	}
	if booking == nil {
		return failedDeduction(domain.ErrBookingNotFound.Error())
	}

	tasks, err := uc.plan(ctx, booking)
	if err != nil {
		uc.log.Error().Err(err).Str("booking_id", bookingID).Msg("descuento automático: error resolviendo productos")
		return failedDeduction(err.Error())
	}

	results := make([]dto.DeductionResultDTO, len(tasks))
	lowStock := make([]*entity.Product, len(tasks))
	reason := fmt.Sprintf("Auto deduct - Booking #%s", booking.BookingNumber)

	// Las tareas de un mismo producto van en serie dentro de su grupo para no competir por la fila.
	var g errgroup.Group
	g.SetLimit(uc.workers)
	for _, idxs := range groupByProduct(tasks) {
		idxs := idxs
		g.Go(func() error {
			for _, i := range idxs {
				t := tasks[i]
				change, err := uc.ledger.DeductStock(ctx, DeductStockInput{
					ProductID: t.product.ID,
					Quantity:  t.usage,
					Reason:    reason,
					ActorID:   actorID,
					BookingID: booking.ID,
					Type:      entity.MovementTypeUsage,
				})
				if err != nil {
					uc.log.Warn().Err(err).Str("booking_id", booking.ID).Str("product_id", t.product.ID).Msg("producto omitido en descuento automático")
					results[i] = dto.DeductionResultDTO{Product: t.product.Name, Error: err.Error(), Skipped: true}
					continue
				}
				deducted := t.usage
				remaining := change.Product.CurrentStock
				results[i] = dto.DeductionResultDTO{
					Product:   t.product.Name,
					Deducted:  &deducted,
					Remaining: &remaining,
					Unit:      change.Product.Unit,
				}
				if change.Product.IsLowStock() {
					lowStock[i] = change.Product
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	warnings := []string{}
	for _, p := range lowStock {
		if p != nil {
			warnings = append(warnings, fmt.Sprintf("⚠️ %q con stock bajo: %s %s restantes", p.Name, p.CurrentStock.String(), p.Unit))
		}
	}

	out := &dto.AutoDeductResult{Success: true, Results: results, Warnings: warnings}
	uc.log.Info().
		Str("booking_id", booking.ID).
		Str("booking_number", booking.BookingNumber).
		Int("products", len(results)).
		Int("warnings", len(warnings)).
		Msg("descuento automático completado")

	if uc.events != nil {
		if perr := uc.events.BookingDeducted(ctx, booking, out); perr != nil {
			uc.log.Error().Err(perr).Str("booking_id", booking.ID).Msg("no se pudo publicar descuento de reserva")
		}
	}
	return out
}

// failedDeduction resumen de un descuento que no llegó a ejecutarse; las listas van vacías, nunca null.
func failedDeduction(msg string) *dto.AutoDeductResult {
	return &dto.AutoDeductResult{Success: false, Results: []dto.DeductionResultDTO{}, Warnings: []string{}, Error: msg}
}

func (uc *AutoDeductUseCase) plan(ctx context.Context, booking *entity.Booking) ([]deductTask, error) {
	var tasks []deductTask
	for _, line := range booking.Services {
		if line.ItemID == "" {
			continue
		}
		products, err := uc.products.ListActiveByService(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			link := p.LinkFor(line.ItemID)
			if link == nil {
				continue
			}
			tasks = append(tasks, deductTask{
				product: p,
				usage:   link.UsagePerSession.Mul(decimal.NewFromInt(line.EffectiveQuantity())),
			})
		}
	}
	return tasks, nil
}

// groupByProduct agrupa índices de tareas por producto, conservando el orden de aparición.
func groupByProduct(tasks []deductTask) [][]int {
	pos := make(map[string]int)
	var groups [][]int
	for i, t := range tasks {
		g, ok := pos[t.product.ID]
		if !ok {
			g = len(groups)
			pos[t.product.ID] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
