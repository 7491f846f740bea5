package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-distribucion/internal/application/auth"
	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-distribucion/pkg/jwt"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Locations().Create(context.Background(), &entity.Location{ID: "d", Name: "Dist", Type: entity.LocationTypeDistributor}))
	return auth.NewAuthUseCase(s.Users(), s.Locations(), auth.JWTConfig{Secret: "k", ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "Dist@Example.com", Password: "password1", Role: entity.RoleDistributor, LocationID: "d",
	})
	require.NoError(t, err)
	assert.Equal(t, "dist@example.com", u.Email)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "dist@example.com", Password: "password1"})
	require.NoError(t, err)
	id, err := jwt.Parse("k", out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: u.ID, Role: entity.RoleDistributor, LocationID: "d"}, id)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "dist@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_Reglas(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "password1", Role: entity.RoleStoreManager})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "password1", Role: entity.RoleStoreManager, LocationID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "root@example.com", Password: "password1", Role: entity.RoleSuperAdmin})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "root@example.com", Password: "password1", Role: entity.RoleSuperAdmin})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
