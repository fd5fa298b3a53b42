package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	s      *Store
	locked bool
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// Create inserta un producto; el ID debe venir asignado.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	defer r.s.lock(r.locked)()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	c := copyProduct(p)
	c.StockMovements = nil
	r.s.products[p.ID] = c
	return nil
}

// GetByID devuelve una copia del producto o (nil, nil).
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	defer r.s.lock(r.locked)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

// GetForUpdate dentro de Run el store ya está bloqueado; equivale a GetByID.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update actualiza catálogo y servicios vinculados; conserva stock y versión.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	defer r.s.lock(r.locked)()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	c := copyProduct(p)
	c.StockMovements = nil
	c.CurrentStock = cur.CurrentStock
	c.Version = cur.Version
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.s.products[p.ID] = c
	return nil
}

// UpdateStock escribe el saldo si la versión coincide.
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock decimal.Decimal, expectedVersion int64) error {
	defer r.s.lock(r.locked)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Version != expectedVersion {
		return domain.ErrConcurrentUpdate
	}
	p.CurrentStock = stock
	p.Version++
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// List filtra y ordena por fecha de creación descendente.
func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	defer r.s.lock(r.locked)()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Product
	for _, p := range r.s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Gender != "" && p.Gender != f.Gender && p.Gender != entity.GenderBoth {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		if f.LowStockOnly && !p.IsLowStock() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.NameAr), search) {
			continue
		}
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ListActiveByService productos activos vinculados al servicio, en orden de creación.
func (r *ProductRepository) ListActiveByService(ctx context.Context, serviceID string) ([]*entity.Product, error) {
	defer r.s.lock(r.locked)()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.LinkFor(serviceID) != nil {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete borra el producto y su historial.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(r.locked)()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}
