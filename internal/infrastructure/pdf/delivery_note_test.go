package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

func TestRender_GeneraPDF(t *testing.T) {
	m := &entity.Movement{
		ID:               "0f8fad5b-d9cb-469f-a165-70867728950e",
		FromLocationID:   "w",
		FromLocationName: "Bodega Central",
		ToLocationID:     "d",
		ToLocationName:   "Distribuidor Norte",
		Status:           entity.MovementStatusReceived,
		CreatedBy:        "u1",
		CreatedAt:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Items: []entity.MovementItem{
			{ID: "i1", ProductID: "p", ProductName: "Arroz", Quantity: 30, UnitPrice: decimal.NewFromInt(5)},
		},
		Activities: []entity.MovementActivity{
			{ID: "a1", Action: entity.MovementActionCreated, CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
	}
	out, err := NewDeliveryNoteGenerator("Inventario").Render(m)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_Nil(t *testing.T) {
	_, err := NewDeliveryNoteGenerator("x").Render(nil)
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.234.567,50", formatAmount(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "0,00", formatAmount(decimal.Zero))
	assert.Equal(t, "150,00", formatAmount(decimal.NewFromInt(150)))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0F8FAD5B", shortID("0f8fad5b-d9cb"))
	assert.Equal(t, "AB", shortID("ab"))
}
