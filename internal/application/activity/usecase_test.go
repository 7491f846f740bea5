package activity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-distribucion/internal/application/activity"
	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/memory"
)

func TestTrail_RecordYRecent(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "u1@example.com", Name: "Uno"}))
	uc := activity.NewTrailUseCase(s.ActivityLog())

	u1 := authz.Actor{UserID: "u1", Role: entity.RoleDistributor, LocationID: "d"}
	u2 := authz.Actor{UserID: "u2", Role: entity.RoleStoreManager, LocationID: "s"}
	admin := authz.Actor{UserID: "root", Role: entity.RoleSuperAdmin}

	_, err := uc.Record(ctx, u1, dto.RecordActivityRequest{Action: "Login"})
	require.NoError(t, err)
	_, err = uc.Record(ctx, u2, dto.RecordActivityRequest{Action: "Export", EntityType: entity.EntityTypeInventory})
	require.NoError(t, err)
	_, err = uc.Record(ctx, u1, dto.RecordActivityRequest{Action: "Logout"})
	require.NoError(t, err)

	own, err := uc.Recent(ctx, u1, 0)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "Logout", own[0].Action)
	assert.Equal(t, "Uno", own[0].UserName)

	all, err := uc.Recent(ctx, admin, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Logout", all[0].Action)
	assert.Equal(t, "Export", all[1].Action)
}

func TestTrail_AccionRequerida(t *testing.T) {
	uc := activity.NewTrailUseCase(memory.NewStore().ActivityLog())
	_, err := uc.Record(context.Background(), authz.Actor{UserID: "u"}, dto.RecordActivityRequest{Action: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
