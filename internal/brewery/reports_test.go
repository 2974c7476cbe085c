package brewery

import (
	"testing"

	"brewja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionStatsAggregatesByRecipe(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	seedMaltRecipe(t, e, 64)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))

	_, err := e.CreateKeg(models.Keg{ID: "K-001", Capacity: 50})
	require.NoError(t, err)
	_, err = e.CreateKeg(models.Keg{ID: "K-002", Capacity: 50})
	require.NoError(t, err)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))
	require.NoError(t, e.PackageToKeg("FV-01", "K-002", 50))
	require.NoError(t, e.DispatchKeg("K-002", "Bar do Zé"))
	require.NoError(t, e.PackageToBottles("FV-01", 100, 0.6, "Rótulo Preto"))

	stats := e.ProductionStats()
	require.Len(t, stats, 1)
	s := stats[0]
	assert.Equal(t, "IPA", s.RecipeName)
	assert.InDelta(t, 640.0, s.TankVolume, 1e-9) // 800 - 50 - 50 - 60
	assert.Equal(t, 100.0, s.KegVolume)
	assert.Equal(t, 1, s.KegsInHouse)
	assert.Equal(t, 1, s.KegsOut)
	assert.Equal(t, 100, s.BottleCount)
	assert.InDelta(t, 60.0, s.BottleLiters, 1e-9)
}

func TestProductionStatsSkipsIdleEquipment(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	_, err := e.CreateKeg(models.Keg{ID: "K-001", Capacity: 50})
	require.NoError(t, err)

	assert.Empty(t, e.ProductionStats())
}

func TestKegDaysRemainingNilBeforeDispatch(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))

	days, err := e.KegDaysRemaining("K-001")
	require.NoError(t, err)
	assert.Nil(t, days)

	_, err = e.KegDaysRemaining("K-404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestKegDaysRemainingUsesRecipeShelfLife(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	seedMaltRecipe(t, e, 64) // shelf life 90 days
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))
	_, err := e.CreateKeg(models.Keg{ID: "K-001", Capacity: 50})
	require.NoError(t, err)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))
	require.NoError(t, e.DispatchKeg("K-001", "Bar do Zé"))

	days, err := e.KegDaysRemaining("K-001")
	require.NoError(t, err)
	require.NotNil(t, days)
	// Dispatched today at day granularity; allow the midnight boundary.
	assert.GreaterOrEqual(t, *days, 89)
	assert.LessOrEqual(t, *days, 90)
}

func TestKegDaysRemainingFallbackWithoutRecipe(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "", 800))
	_, err := e.CreateKeg(models.Keg{ID: "K-001", Capacity: 50})
	require.NoError(t, err)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))
	require.NoError(t, e.DispatchKeg("K-001", "Bar do Zé"))

	days, err := e.KegDaysRemaining("K-001")
	require.NoError(t, err)
	require.NotNil(t, days)
	assert.GreaterOrEqual(t, *days, fallbackShelfLifeDays-1)
	assert.LessOrEqual(t, *days, fallbackShelfLifeDays)
}
