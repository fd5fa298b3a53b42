package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implementación del puerto BookingRepository sobre PostgreSQL.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const bookingColumns = `id, booking_number, customer_name, phone, services, total_amount, booking_date, booking_time,
	address, status, assigned_staff, assigned_staff_name, created_at, updated_at`

type bookingItemJSON struct {
	ItemID       string          `json:"itemId"`
	Type         string          `json:"type"`
	Name         string          `json:"name"`
	NameAr       string          `json:"nameAr,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Duration     int             `json:"duration"`
	PackageItems []string        `json:"packageItems,omitempty"`
}

type addressJSON struct {
	Building  string `json:"building,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Area      string `json:"area,omitempty"`
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	var servicesRaw, addressRaw []byte
	if err := row.Scan(&b.ID, &b.BookingNumber, &b.CustomerName, &b.Phone, &servicesRaw, &b.TotalAmount,
		&b.Date, &b.Time, &addressRaw, &b.Status, &b.AssignedStaff, &b.AssignedStaffName, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	var items []bookingItemJSON
	if err := fromJSONB(servicesRaw, &items); err != nil {
		return nil, err
	}
	for _, it := range items {
		b.Services = append(b.Services, entity.BookingItem{
			ItemID: it.ItemID, Type: it.Type, Name: it.Name, NameAr: it.NameAr, Price: it.Price,
			Quantity: it.Quantity, Duration: it.Duration, PackageItems: it.PackageItems,
		})
	}
	var addr addressJSON
	if err := fromJSONB(addressRaw, &addr); err != nil {
		return nil, err
	}
	b.Address = entity.Address{Building: addr.Building, Apartment: addr.Apartment, Area: addr.Area}
	return &b, nil
}

// Create persiste una reserva nueva.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	items := make([]bookingItemJSON, 0, len(b.Services))
	for _, it := range b.Services {
		items = append(items, bookingItemJSON{
			ItemID: it.ItemID, Type: it.Type, Name: it.Name, NameAr: it.NameAr, Price: it.Price,
			Quantity: it.Quantity, Duration: it.Duration, PackageItems: it.PackageItems,
		})
	}
	services, err := toJSONB(items)
	if err != nil {
		return err
	}
	address, err := toJSONB(addressJSON{Building: b.Address.Building, Apartment: b.Address.Apartment, Area: b.Address.Area})
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.BookingNumber, b.CustomerName, b.Phone, services, b.TotalAmount, b.Date, b.Time,
		address, b.Status, b.AssignedStaff, b.AssignedStaffName, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva; (nil, nil) si no existe.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	return r.get(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// GetForUpdate obtiene la reserva bloqueando la fila.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Booking, error) {
	return r.get(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *BookingRepo) get(ctx context.Context, query, id string) (*entity.Booking, error) {
	b, err := scanBooking(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// UpdateStatus cambia el estado de la reserva.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// List reservas más recientes primero.
func (r *BookingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	rows, err := r.q.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var out []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete borra la reserva. Los movimientos que la referencian se conservan.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// CountCreatedSince cuenta reservas creadas desde since.
func (r *BookingRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// CompletedRevenue suma total_amount de las reservas completadas.
func (r *BookingRepo) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = 'completed'`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum completed revenue: %w", err)
	}
	return total, nil
}
