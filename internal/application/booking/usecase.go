package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// UseCase reservas y su transición de estado, que dispara el descuento de inventario.
type UseCase struct {
	repo     repository.BookingRepository
	txRunner TxRunner
	deducter InventoryDeducter
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.BookingRepository, txRunner TxRunner, deducter InventoryDeducter, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, txRunner: txRunner, deducter: deducter, log: log, now: time.Now}
}

// Create registra una reserva pendiente. Las líneas sin cantidad cuentan como 1.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.Phone) == "" ||
		len(in.Services) == 0 || in.Date.IsZero() || in.Time == "" || in.TotalAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.BookingItem, 0, len(in.Services))
	for _, s := range in.Services {
		if s.ItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		if s.Type == "" {
			s.Type = entity.BookingItemService
		}
		if s.Type != entity.BookingItemService && s.Type != entity.BookingItemPackage {
			return nil, domain.ErrInvalidInput
		}
		if s.Quantity < 1 {
			s.Quantity = 1
		}
		items = append(items, entity.BookingItem{
			ItemID: s.ItemID, Type: s.Type, Name: s.Name, NameAr: s.NameAr, Price: s.Price,
			Quantity: s.Quantity, Duration: s.Duration, PackageItems: s.PackageItems,
		})
	}

	now := uc.now().UTC()
	b := &entity.Booking{
		ID:            uuid.New().String(),
		BookingNumber: fmt.Sprintf("BK%d", now.UnixMilli()),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Phone:         strings.TrimSpace(in.Phone),
		Services:      items,
		TotalAmount:   in.TotalAmount,
		Date:          in.Date,
		Time:          in.Time,
		Address:       entity.Address{Building: in.Address.Building, Apartment: in.Address.Apartment, Area: in.Address.Area},
		Status:        entity.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	uc.log.Info().Str("booking_id", b.ID).Str("booking_number", b.BookingNumber).Msg("reserva creada")
	return toBookingResponse(b), nil
}

// List reservas más recientes primero.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.BookingResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBookingResponse(b))
	}
	return out, nil
}

// Get obtiene una reserva.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}
	return toBookingResponse(b), nil
}

// Delete elimina la reserva. Los movimientos de stock que la referencian se conservan.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// UpdateStatus cambia el estado bajo bloqueo de la reserva. Si la transición entra en completed
// desde otro estado, tras el commit se descuenta el inventario y el resumen va en Inventory.
// Un fallo del descuento nunca hace fallar el cambio de estado.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status, actorID string) (*dto.BookingStatusResponse, error) {
	if !entity.IsValidBookingStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	var updated *entity.Booking
	var previous string
	err := uc.txRunner.RunBooking(ctx, func(repo repository.BookingRepository) error {
		b, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrBookingNotFound
		}
		previous = b.Status
		at := uc.now().UTC()
		if err := repo.UpdateStatus(ctx, id, status, at); err != nil {
			return err
		}
		b.Status = status
		b.UpdatedAt = at
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.BookingStatusResponse{Data: *toBookingResponse(updated), PreviousStatus: previous}
	if entity.TriggersInventoryDeduction(previous, status) {
		out.Inventory = uc.deducter.AutoDeductForBooking(ctx, id, actorID)
		if !out.Inventory.Success {
			uc.log.Error().Str("booking_id", id).Str("error", out.Inventory.Error).Msg("descuento automático fallido")
		}
	}
	uc.log.Info().Str("booking_id", id).Str("from", previous).Str("to", status).Msg("estado de reserva actualizado")
	return out, nil
}

// Stats conteos por periodo e ingresos de reservas completadas.
func (uc *UseCase) Stats(ctx context.Context) (*dto.BookingStatsResponse, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := &dto.BookingStatsResponse{}
	counts := []struct {
		since time.Time
		dst   *int
	}{
		{time.Time{}, &out.TotalBookings},
		{today, &out.TodayBookings},
		{today.AddDate(0, 0, -int(today.Weekday())), &out.WeeklyBookings},
		{time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), &out.MonthlyBookings},
		{time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), &out.YearlyBookings},
	}
	for _, c := range counts {
		n, err := uc.repo.CountCreatedSince(ctx, c.since)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	revenue, err := uc.repo.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	out.TotalRevenue = revenue
	return out, nil
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	items := make([]dto.BookingItemDTO, 0, len(b.Services))
	for _, it := range b.Services {
		items = append(items, dto.BookingItemDTO{
			ItemID: it.ItemID, Type: it.Type, Name: it.Name, NameAr: it.NameAr, Price: it.Price,
			Quantity: it.Quantity, Duration: it.Duration, PackageItems: it.PackageItems,
		})
	}
	return &dto.BookingResponse{
		ID:                b.ID,
		BookingNumber:     b.BookingNumber,
		CustomerName:      b.CustomerName,
		Phone:             b.Phone,
		Services:          items,
		TotalAmount:       b.TotalAmount,
		Date:              b.Date,
		Time:              b.Time,
		Address:           dto.AddressDTO{Building: b.Address.Building, Apartment: b.Address.Apartment, Area: b.Address.Area},
		Status:            b.Status,
		AssignedStaff:     b.AssignedStaff,
		AssignedStaffName: b.AssignedStaffName,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
