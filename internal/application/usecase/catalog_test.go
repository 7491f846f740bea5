package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/application/usecase"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/memory"
)

var admin = authz.Actor{UserID: "admin", Role: entity.RoleSuperAdmin}

func TestLocationUseCase_CreateYList(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewLocationUseCase(memory.NewStore().Locations())

	out, err := uc.Create(ctx, admin, dto.CreateLocationRequest{Name: " Agente Norte ", Type: entity.LocationTypeSalesAgent})
	require.NoError(t, err)
	assert.Equal(t, "Agente Norte", out.Name)
	assert.Equal(t, "Sales Agent", out.TypeLabel)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.LocationTypeSalesAgent, got.Type)

	missing, err := uc.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLocationUseCase_Rechazos(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewLocationUseCase(memory.NewStore().Locations())

	_, err := uc.Create(ctx, authz.Actor{UserID: "u", Role: entity.RoleDistributor}, dto.CreateLocationRequest{Name: "X", Type: entity.LocationTypeStore})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, admin, dto.CreateLocationRequest{Name: "X", Type: "factory"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, admin, dto.CreateLocationRequest{Name: "  ", Type: entity.LocationTypeStore})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_SKUUnicoYPaginacion(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Arroz 500g", SKU: "ARZ-500", UnitPrice: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, p.Status)

	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Otro", SKU: "arz-500"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Sin SKU"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Sin SKU 2"})
	require.NoError(t, err, "varios productos sin SKU no chocan")

	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Negativo", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Fracción", UnitPrice: decimal.RequireFromString("1.234")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se redondea en silencio")

	page, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page.Limit)

	all, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 50, all.Page.Limit)
}
