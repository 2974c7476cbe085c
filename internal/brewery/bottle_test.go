package brewery

import (
	"testing"

	"brewja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBottles(t *testing.T, e *Engine, count int) {
	t.Helper()
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))
	require.NoError(t, e.PackageToBottles("FV-01", count, 0.6, "Rótulo Preto"))
}

func TestSellBottlesRemovesLotAtZero(t *testing.T) {
	e := newTestEngine(t)
	seedBottles(t, e, 15)

	require.NoError(t, e.SellBottles("IPA", "Rótulo Preto", 15))
	assert.Empty(t, e.Bottles())

	history := e.History()
	entry := history[0]
	assert.Equal(t, models.ActionSale, entry.ActionType)
	assert.Equal(t, "Bottle", entry.TankID)
	assert.InDelta(t, -9.0, entry.VolumeChanged, 1e-9)
	assert.Contains(t, entry.Details, "Venda de 15 garrafas de Rótulo Preto")
}

func TestSellBottlesPartial(t *testing.T) {
	e := newTestEngine(t)
	seedBottles(t, e, 15)

	require.NoError(t, e.SellBottles("IPA", "Rótulo Preto", 5))

	lots := e.Bottles()
	require.Len(t, lots, 1)
	assert.Equal(t, 10, lots[0].Count)
}

func TestSellBottlesUnknownLot(t *testing.T) {
	e := newTestEngine(t)
	seedBottles(t, e, 15)

	require.ErrorIs(t, e.SellBottles("IPA", "Rótulo Dourado", 1), ErrLotNotFound)
	require.ErrorIs(t, e.SellBottles("Pilsen", "Rótulo Preto", 1), ErrLotNotFound)
}

func TestSellBottlesInsufficientCount(t *testing.T) {
	e := newTestEngine(t)
	seedBottles(t, e, 15)

	err := e.SellBottles("IPA", "Rótulo Preto", 16)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 15, e.Bottles()[0].Count)
}

func TestSellBottlesRejectsNonPositiveCount(t *testing.T) {
	e := newTestEngine(t)
	seedBottles(t, e, 15)
	require.ErrorIs(t, e.SellBottles("IPA", "Rótulo Preto", 0), ErrValidation)
}
