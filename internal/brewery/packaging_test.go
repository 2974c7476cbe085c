package brewery

import (
	"testing"

	"brewja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brewAndKeg sets up a fermenting tank and an empty registered keg.
func brewAndKeg(t *testing.T, e *Engine, brewVolume, kegCapacity float64) {
	t.Helper()
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "IPA", brewVolume))
	_, err := e.CreateKeg(models.Keg{ID: "K-001", Capacity: kegCapacity})
	require.NoError(t, err)
}

func TestPackageToKegFillsAndDebits(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)

	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))

	tank := e.Tanks()[0]
	assert.Equal(t, 750.0, tank.Volume)

	keg := e.Kegs()[0]
	assert.Equal(t, models.KegInHouse, keg.Status)
	assert.Equal(t, 50.0, keg.Volume)
	assert.Equal(t, "IPA", keg.RecipeName)
	assert.Equal(t, tank.ID, keg.BatchID)
	assert.Equal(t, factoryStock, keg.Customer)
	assert.Equal(t, []string{filledAtFactory}, keg.LocationHistory)

	history := e.History()
	require.Len(t, history, 2)
	assert.Equal(t, models.ActionKeg, history[0].ActionType)
	assert.Equal(t, 50.0, history[0].VolumeChanged)
	assert.Contains(t, history[0].Details, "Barril: K-001")
}

func TestPackageToKegTwiceFails(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))

	err := e.PackageToKeg("FV-01", "K-001", 50)
	require.ErrorIs(t, err, ErrKegNotAvailable)

	// Second fill must not touch the tank or the keg.
	assert.Equal(t, 750.0, e.Tanks()[0].Volume)
	assert.Equal(t, 50.0, e.Kegs()[0].Volume)
}

func TestPackageToKegUnknownKegLosesNothing(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))

	err := e.PackageToKeg("FV-01", "K-404", 50)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 800.0, e.Tanks()[0].Volume)
}

func TestPackageToKegInsufficientTankVolume(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 30, 50)

	err := e.PackageToKeg("FV-01", "K-001", 50)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 30.0, e.Tanks()[0].Volume)
	assert.Equal(t, models.KegEmpty, e.Kegs()[0].Status)
}

func TestPackageToBottlesMergesLots(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))

	require.NoError(t, e.PackageToBottles("FV-01", 10, 0.6, "Rótulo Preto"))
	require.NoError(t, e.PackageToBottles("FV-01", 5, 0.6, "Rótulo Preto"))

	lots := e.Bottles()
	require.Len(t, lots, 1)
	assert.Equal(t, 15, lots[0].Count)
	assert.Equal(t, "Rótulo Preto", lots[0].LabelName)
	assert.Equal(t, "IPA", lots[0].RecipeName)
	assert.InDelta(t, 800-15*0.6, e.Tanks()[0].Volume, 1e-9)
}

func TestPackageToBottlesKeepsSizesApart(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))

	require.NoError(t, e.PackageToBottles("FV-01", 10, 0.6, "Rótulo Preto"))
	require.NoError(t, e.PackageToBottles("FV-01", 10, 0.3, "Rótulo Preto"))

	lots := e.Bottles()
	require.Len(t, lots, 2)
	assert.NotEqual(t, lots[0].VolumePerBottle, lots[1].VolumePerBottle)
}

func TestPackageToBottlesValidation(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))

	require.ErrorIs(t, e.PackageToBottles("FV-01", 10, 0.6, ""), ErrValidation)
	require.ErrorIs(t, e.PackageToBottles("FV-01", 0, 0.6, "Rótulo"), ErrValidation)
	require.ErrorIs(t, e.PackageToBottles("FV-01", 10, 0, "Rótulo"), ErrValidation)
}

func TestPackageToBottlesInsufficientVolume(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 10))

	err := e.PackageToBottles("FV-01", 100, 0.6, "Rótulo Preto")
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10.0, e.Tanks()[0].Volume)
	assert.Empty(t, e.Bottles())
}
