package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// AdminRepository implementación en memoria de repository.AdminRepository.
type AdminRepository struct {
	s *Store
}

var _ repository.AdminRepository = (*AdminRepository)(nil)

func (r *AdminRepository) Create(ctx context.Context, a *entity.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(a.Email)
	if _, ok := r.s.admins[key]; ok {
		return domain.ErrDuplicate
	}
	c := *a
	r.s.admins[key] = &c
	return nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}
