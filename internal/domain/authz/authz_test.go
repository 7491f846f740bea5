package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

var (
	admin       = authz.Actor{UserID: "u-admin", Role: entity.RoleSuperAdmin}
	warehouseMg = authz.Actor{UserID: "u-wh", Role: entity.RoleWarehouseManager, LocationID: "loc-w"}
	distributor = authz.Actor{UserID: "u-d", Role: entity.RoleDistributor, LocationID: "loc-d"}
	outsider    = authz.Actor{UserID: "u-s", Role: entity.RoleStoreManager, LocationID: "loc-s"}
	homeless    = authz.Actor{UserID: "u-x", Role: entity.RoleSalesAgent}
)

func movementWD() *entity.Movement {
	return &entity.Movement{ID: "m1", FromLocationID: "loc-w", ToLocationID: "loc-d", CreatedBy: "u-wh", Status: entity.MovementStatusPending}
}

func TestCanOriginate(t *testing.T) {
	assert.True(t, authz.CanOriginate(admin, "loc-w"))
	assert.True(t, authz.CanOriginate(warehouseMg, "loc-w"))
	assert.False(t, authz.CanOriginate(warehouseMg, "loc-d"))
	assert.False(t, authz.CanOriginate(homeless, ""))
}

func TestCanTransition_ReceptorApruebaYRecibe(t *testing.T) {
	m := movementWD()
	for _, target := range []string{entity.MovementStatusApproved, entity.MovementStatusReceived} {
		assert.True(t, authz.CanTransition(distributor, m, target))
		assert.True(t, authz.CanTransition(admin, m, target))
		assert.False(t, authz.CanTransition(warehouseMg, m, target), "el origen no aprueba su propio envío")
		assert.False(t, authz.CanTransition(outsider, m, target))
	}
}

func TestCanTransition_Cancelar(t *testing.T) {
	m := movementWD()
	assert.True(t, authz.CanTransition(warehouseMg, m, entity.MovementStatusCancelled))
	assert.False(t, authz.CanTransition(distributor, m, entity.MovementStatusCancelled))
	assert.False(t, authz.CanTransition(outsider, m, entity.MovementStatusCancelled))

	creator := authz.Actor{UserID: "u-wh", Role: entity.RoleWarehouseManager}
	assert.True(t, authz.CanTransition(creator, m, entity.MovementStatusCancelled))
}

func TestCanTransition_EstadoDesconocido(t *testing.T) {
	assert.False(t, authz.CanTransition(distributor, movementWD(), "shipped"))
}

func TestCanView(t *testing.T) {
	m := movementWD()
	assert.True(t, authz.CanView(admin, m))
	assert.True(t, authz.CanView(warehouseMg, m))
	assert.True(t, authz.CanView(distributor, m))
	assert.False(t, authz.CanView(outsider, m))
	assert.False(t, authz.CanView(homeless, m))
}

func TestCanAddInitialStock(t *testing.T) {
	assert.True(t, authz.CanAddInitialStock(admin, "loc-w"))
	assert.True(t, authz.CanAddInitialStock(warehouseMg, "loc-w"))
	assert.False(t, authz.CanAddInitialStock(warehouseMg, "loc-other"))
	assert.False(t, authz.CanAddInitialStock(distributor, "loc-d"))
}

func TestCanAdjustYViewLocation(t *testing.T) {
	assert.True(t, authz.CanAdjust(admin))
	assert.False(t, authz.CanAdjust(warehouseMg))
	assert.True(t, authz.CanViewLocation(distributor, "loc-d"))
	assert.False(t, authz.CanViewLocation(distributor, "loc-w"))
	assert.False(t, authz.CanViewLocation(homeless, ""))
}
