package brewery

import (
	"testing"

	"brewja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateKegDuplicateID(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateKeg(models.Keg{ID: "K-001", Capacity: 50})
	require.NoError(t, err)

	_, err = e.CreateKeg(models.Keg{ID: "K-001", Capacity: 30})
	require.ErrorIs(t, err, ErrDuplicateKeg)
	assert.Len(t, e.Kegs(), 1)
}

func TestCreateKegDefaults(t *testing.T) {
	e := newTestEngine(t)
	keg, err := e.CreateKeg(models.Keg{ID: "K-001", Capacity: 50})
	require.NoError(t, err)
	assert.Equal(t, models.KegEmpty, keg.Status)
	assert.Equal(t, "-", keg.FillDate)
}

func TestDispatchKegClassifiesDestination(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))

	// Factory keyword keeps the keg in-house with no dispatch date.
	require.NoError(t, e.DispatchKeg("K-001", "Estoque Câmara Fria"))
	keg := e.Kegs()[0]
	assert.Equal(t, models.KegInHouse, keg.Status)
	assert.Empty(t, keg.DispatchDate)

	// An outside destination starts the shelf-life clock.
	require.NoError(t, e.DispatchKeg("K-001", "Bar do Zé"))
	keg = e.Kegs()[0]
	assert.Equal(t, models.KegRetail, keg.Status)
	assert.NotEmpty(t, keg.DispatchDate)
	assert.Equal(t, "Bar do Zé", keg.Customer)

	history := e.History()
	assert.Equal(t, models.ActionDispatch, history[0].ActionType)
	assert.Contains(t, history[0].Details, "Barril K-001 movido para Bar do Zé")
}

func TestDispatchDateIsSetOnce(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))

	require.NoError(t, e.DispatchKeg("K-001", "Bar do Zé"))
	first := e.Kegs()[0].DispatchDate
	require.NotEmpty(t, first)

	// Further moves, even back to the factory, keep the original date.
	require.NoError(t, e.DispatchKeg("K-001", "Restaurante Central"))
	assert.Equal(t, first, e.Kegs()[0].DispatchDate)
	require.NoError(t, e.DispatchKeg("K-001", "Fábrica (Estoque)"))
	assert.Equal(t, first, e.Kegs()[0].DispatchDate)
}

func TestReturnKegPartial(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))
	require.NoError(t, e.DispatchKeg("K-001", "Bar do Zé"))

	require.NoError(t, e.ReturnKeg("K-001", 10))

	keg := e.Kegs()[0]
	assert.Equal(t, models.KegInHouse, keg.Status)
	assert.Equal(t, 10.0, keg.Volume)
	assert.Equal(t, factory, keg.Customer)
	// Partial returns keep the batch identity and the dispatch date.
	assert.Equal(t, "IPA", keg.RecipeName)
	assert.NotEmpty(t, keg.BatchID)
	assert.NotEqual(t, "-", keg.FillDate)
	assert.NotEmpty(t, keg.DispatchDate)

	history := e.History()
	assert.Equal(t, models.ActionReturn, history[0].ActionType)
	assert.Equal(t, 40.0, history[0].VolumeChanged)
}

func TestReturnKegEmpty(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 50))
	require.NoError(t, e.DispatchKeg("K-001", "Bar do Zé"))

	require.NoError(t, e.ReturnKeg("K-001", 0))

	keg := e.Kegs()[0]
	assert.Equal(t, models.KegEmpty, keg.Status)
	assert.Equal(t, 0.0, keg.Volume)
	assert.Empty(t, keg.RecipeName)
	assert.Empty(t, keg.BatchID)
	assert.Equal(t, "-", keg.FillDate)
	// An empty return resets the shelf-life clock for the next fill.
	assert.Empty(t, keg.DispatchDate)
	assert.Equal(t, factory, keg.Customer)

	history := e.History()
	assert.Equal(t, models.ActionReturn, history[0].ActionType)
	assert.Equal(t, 50.0, history[0].VolumeChanged)
	// Recipe resolved before the reset cleared it.
	assert.Equal(t, "IPA", history[0].RecipeName)
}

func TestReturnKegRejectsNegativeVolume(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 50)
	require.ErrorIs(t, e.ReturnKeg("K-001", -1), ErrValidation)
}

func TestBottleFromKegResidueUnderEpsilonEmptiesKeg(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 30)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 30))
	require.NoError(t, e.DispatchKeg("K-001", "Bar do Zé"))
	require.NoError(t, e.ReturnKeg("K-001", 30))

	// 49 bottles leave 0.6L, above the 0.1L epsilon.
	require.NoError(t, e.BottleFromKeg("K-001", 49, 0.6, "Rótulo Preto"))
	keg := e.Kegs()[0]
	assert.Equal(t, models.KegInHouse, keg.Status)
	assert.InDelta(t, 0.6, keg.Volume, 1e-9)

	// The last bottle leaves only float dust; the keg counts as emptied.
	require.NoError(t, e.BottleFromKeg("K-001", 1, 0.6, "Rótulo Preto"))
	keg = e.Kegs()[0]
	assert.Equal(t, models.KegEmpty, keg.Status)
	assert.Equal(t, 0.0, keg.Volume)
	assert.Empty(t, keg.RecipeName)
	// Emptying by bottling keeps the dispatch date; only a return clears it.
	assert.NotEmpty(t, keg.DispatchDate)

	lots := e.Bottles()
	require.Len(t, lots, 1)
	assert.Equal(t, 50, lots[0].Count)
	assert.Equal(t, "IPA", lots[0].RecipeName)
}

func TestBottleFromKegInsufficientVolume(t *testing.T) {
	e := newTestEngine(t)
	brewAndKeg(t, e, 800, 30)
	require.NoError(t, e.PackageToKeg("FV-01", "K-001", 30))

	err := e.BottleFromKeg("K-001", 51, 0.6, "Rótulo Preto")
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 30.0, e.Kegs()[0].Volume)
	assert.Empty(t, e.Bottles())
}
