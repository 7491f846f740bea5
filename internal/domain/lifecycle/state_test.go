package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/lifecycle"
)

var allStatuses = []string{
	entity.MovementStatusPending,
	entity.MovementStatusApproved,
	entity.MovementStatusReceived,
	entity.MovementStatusCancelled,
}

func TestCheck_TransicionesLegales(t *testing.T) {
	legal := [][2]string{
		{entity.MovementStatusPending, entity.MovementStatusApproved},
		{entity.MovementStatusPending, entity.MovementStatusCancelled},
		{entity.MovementStatusApproved, entity.MovementStatusReceived},
	}
	for _, tr := range legal {
		assert.NoError(t, lifecycle.Check(tr[0], tr[1]), "%s → %s", tr[0], tr[1])
	}
}

func TestCheck_TransicionesIlegales(t *testing.T) {
	illegal := [][2]string{
		{entity.MovementStatusApproved, entity.MovementStatusCancelled},
		{entity.MovementStatusPending, entity.MovementStatusReceived},
		{entity.MovementStatusPending, entity.MovementStatusPending},
		{entity.MovementStatusApproved, entity.MovementStatusPending},
	}
	for _, tr := range illegal {
		err := lifecycle.Check(tr[0], tr[1])
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}

func TestEstadosTerminales(t *testing.T) {
	for _, terminal := range []string{entity.MovementStatusReceived, entity.MovementStatusCancelled} {
		assert.True(t, lifecycle.IsTerminal(terminal))
		for _, target := range allStatuses {
			assert.ErrorIs(t, lifecycle.Check(terminal, target), domain.ErrInvalidTransition)
		}
	}
	assert.False(t, lifecycle.IsTerminal(entity.MovementStatusPending))
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, lifecycle.IsKnownStatus(s))
	}
	assert.False(t, lifecycle.IsKnownStatus("shipped"))
}

func TestDefaultAction(t *testing.T) {
	assert.Equal(t, entity.MovementActionReceived, lifecycle.DefaultAction(entity.MovementStatusReceived))
	assert.Equal(t, entity.MovementActionCancelled, lifecycle.DefaultAction(entity.MovementStatusCancelled))
	assert.Equal(t, []string{entity.MovementStatusReceived}, lifecycle.Next(entity.MovementStatusApproved))
}
