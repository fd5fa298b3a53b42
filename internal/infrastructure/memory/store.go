// Package memory implementa los puertos de repositorio en memoria.
// Se usa con STORAGE=memory para desarrollo local y como doble en los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
// mu cumple el papel del bloqueo de fila: una transacción lo mantiene tomado de principio a fin.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []entity.StockMovement
	bookings  map[string]*entity.Booking
	admins    map[string]*entity.Admin // por email
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		bookings: make(map[string]*entity.Booking),
		admins:   make(map[string]*entity.Admin),
	}
}

type snapshot struct {
	products  map[string]*entity.Product
	movements []entity.StockMovement
	bookings  map[string]*entity.Booking
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]*entity.Product, len(s.products)),
		movements: append([]entity.StockMovement(nil), s.movements...),
		bookings:  make(map[string]*entity.Booking, len(s.bookings)),
	}
	for id, p := range s.products {
		snap.products[id] = copyProduct(p)
	}
	for id, b := range s.bookings {
		snap.bookings[id] = copyBooking(b)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.bookings = snap.bookings
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepository { return &StockMovementRepository{s: s} }

// Bookings repositorio de reservas fuera de transacción.
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// Admins repositorio de administradores.
func (s *Store) Admins() *AdminRepository { return &AdminRepository{s: s} }

// TxRunner ejecuta funciones con el store bloqueado; si fn falla se restaura el estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios de productos y movimientos atados a la "transacción".
func (r *TxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return r.atomic(ctx, func() error {
		return fn(&ProductRepository{s: r.s, locked: true}, &StockMovementRepository{s: r.s, locked: true})
	})
}

// RunBooking ejecuta fn con un repositorio de reservas atado a la "transacción".
func (r *TxRunner) RunBooking(ctx context.Context, fn func(repository.BookingRepository) error) error {
	return r.atomic(ctx, func() error {
		return fn(&BookingRepository{s: r.s, locked: true})
	})
}

func (r *TxRunner) atomic(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// lock toma el mutex salvo que el repositorio ya opere dentro de una transacción.
func (s *Store) lock(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	c.LinkedServices = append([]entity.LinkedService(nil), p.LinkedServices...)
	c.StockMovements = append([]entity.StockMovement(nil), p.StockMovements...)
	return &c
}

func copyBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.Services = make([]entity.BookingItem, len(b.Services))
	for i, it := range b.Services {
		it.PackageItems = append([]string(nil), it.PackageItems...)
		c.Services[i] = it
	}
	return &c
}
