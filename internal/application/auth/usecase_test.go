package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salon-inventario-api/internal/application/auth"
	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/salon-inventario-api/pkg/jwt"
)

const secret = "auth-test-secret"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Admins(), auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "salon-test"}), store
}

func TestEnsureBootstrapAdmin_Idempotente(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	created, err := uc.EnsureBootstrapAdmin(ctx, "Owner", "Owner@Salon.test", "pass-1234")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureBootstrapAdmin(ctx, "Owner", "owner@salon.test", "otra")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = uc.EnsureBootstrapAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created, "sin email no se crea nada")
}

func TestLogin_OK(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.EnsureBootstrapAdmin(context.Background(), "Owner", "owner@salon.test", "pass-1234")
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " owner@salon.test ", Password: "pass-1234"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, out.Admin.Role)
	assert.Equal(t, "owner@salon.test", out.Admin.Email)

	adminID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Admin.ID, adminID)
	assert.Equal(t, entity.RoleSuperAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.EnsureBootstrapAdmin(context.Background(), "Owner", "owner@salon.test", "pass-1234")
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "owner@salon.test", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@salon.test", Password: "pass-1234"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_AdminInactivo(t *testing.T) {
	uc, store := newAuth()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass-1234"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Admins().Create(context.Background(), &entity.Admin{
		ID: "a-2", Name: "Staff", Email: "staff@salon.test", PasswordHash: string(hash),
		Role: entity.RoleAdmin, IsActive: false, CreatedAt: time.Now(),
	}))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "staff@salon.test", Password: "pass-1234"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
