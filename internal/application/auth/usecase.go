package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
	"github.com/jhoicas/salon-inventario-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de administradores y alta del super-admin inicial.
type AuthUseCase struct {
	adminRepo repository.AdminRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(adminRepo repository.AdminRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{adminRepo: adminRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y genera el JWT. Email desconocido y password incorrecto
// devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	admin, err := uc.adminRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !admin.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, admin.ID, admin.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Admin: toAdminResponse(admin)}, nil
}

// EnsureBootstrapAdmin crea el super-admin configurado si aún no existe. created=false si ya estaba.
func (uc *AuthUseCase) EnsureBootstrapAdmin(ctx context.Context, name, email, password string) (created bool, err error) {
	if email == "" || password == "" {
		return false, nil
	}
	existing, err := uc.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	admin := &entity.Admin{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toAdminResponse(a *entity.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
