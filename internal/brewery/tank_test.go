package brewery

import (
	"strings"
	"testing"

	"brewja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartBatchScalesIngredientBill(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	seedMaltRecipe(t, e, 64)

	// 8kg per 100L base, brewed at 800L: exactly 64kg.
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))

	materials := e.Materials()
	require.Len(t, materials, 1)
	assert.Equal(t, 0.0, materials[0].Quantity)

	tanks := e.Tanks()
	require.Len(t, tanks, 1)
	tank := tanks[0]
	assert.Equal(t, models.TankFermenting, tank.Status)
	assert.Equal(t, 800.0, tank.Volume)
	assert.Equal(t, "IPA", tank.RecipeName)
	assert.Equal(t, 1.060, tank.OriginalGravity)
	assert.Equal(t, 1.060, tank.CurrentGravity)
	assert.Equal(t, 1.012, tank.TargetGravity)
	require.Len(t, tank.Ingredients, 1)
	assert.Equal(t, "malt-1", tank.Ingredients[0].MaterialID)
	assert.Equal(t, 64.0, tank.Ingredients[0].Amount)

	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionBrew, history[0].ActionType)
	assert.Equal(t, "FV-01", history[0].TankID)
	assert.Equal(t, 800.0, history[0].VolumeChanged)
	assert.Contains(t, history[0].Details, "Nova Brassagem (OG: 1.060)")
}

func TestStartBatchShortfallLeavesEverythingUntouched(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	seedMaltRecipe(t, e, 63) // one kilo short for 800L

	err := e.StartBatch("FV-01", "IPA", 800)
	require.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, 63.0, e.Materials()[0].Quantity)
	tank := e.Tanks()[0]
	assert.Equal(t, models.TankEmpty, tank.Status)
	assert.Equal(t, 0.0, tank.Volume)
	assert.Empty(t, e.History())
}

func TestStartBatchDeductionIsAllOrNothing(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	_, err := e.ReceiveMaterial(models.RawMaterial{
		ID: "malt-1", Name: "Malte Pilsen", Type: models.MaterialMalt, Quantity: 100, Unit: "kg",
	})
	require.NoError(t, err)
	_, err = e.ReceiveMaterial(models.RawMaterial{
		ID: "hops-1", Name: "Lúpulo Citra", Type: models.MaterialHops, Quantity: 0.5, Unit: "kg",
	})
	require.NoError(t, err)
	_, err = e.SaveRecipe(models.Recipe{
		Name: "IPA", BaseVolume: 100, OG: 1.060, FG: 1.012,
		Ingredients: []models.RecipeIngredient{
			{MaterialID: "malt-1", Name: "Malte Pilsen", Quantity: 8, Unit: "kg"},
			{MaterialID: "hops-1", Name: "Lúpulo Citra", Quantity: 1, Unit: "kg"},
		},
	})
	require.NoError(t, err)

	// Malt would cover 800L but hops cannot; the malt line must stay intact.
	err = e.StartBatch("FV-01", "IPA", 800)
	require.ErrorIs(t, err, ErrInsufficientStock)

	materials := e.Materials()
	assert.Equal(t, 100.0, materials[0].Quantity)
	assert.Equal(t, 0.5, materials[1].Quantity)
}

func TestStartBatchRejectsOverCapacity(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)

	err := e.StartBatch("FV-01", "", 1200)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, models.TankEmpty, e.Tanks()[0].Status)
}

func TestStartBatchRejectsBusyTank(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "", 500))

	err := e.StartBatch("FV-01", "", 300)
	require.ErrorIs(t, err, ErrValidation)

	// The running batch survives untouched.
	tank := e.Tanks()[0]
	assert.Equal(t, models.TankFermenting, tank.Status)
	assert.Equal(t, 500.0, tank.Volume)
	assert.Len(t, e.History(), 1)
}

func TestStartBatchUnknownTank(t *testing.T) {
	e := newTestEngine(t)
	require.ErrorIs(t, e.StartBatch("FV-99", "", 100), ErrNotFound)
}

func TestStartBatchWithoutRecipeUsesDefaults(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)

	require.NoError(t, e.StartBatch("FV-01", "", 500))

	tank := e.Tanks()[0]
	assert.Equal(t, models.DefaultOG, tank.OriginalGravity)
	assert.Equal(t, models.DefaultFG, tank.TargetGravity)
	assert.Empty(t, tank.Ingredients)
}

func TestStartBatchAssignsBatchID(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)

	require.NoError(t, e.StartBatch("FV-01", "", 500))

	tank := e.Tanks()[0]
	assert.Equal(t, "FV-01", tank.TankID)
	assert.True(t, strings.HasPrefix(tank.ID, "BATCH-"), "got id %q", tank.ID)

	// The tank stays addressable by either identifier.
	require.NoError(t, e.SetTankStatus(tank.ID, models.TankConditioning))
	assert.Equal(t, models.TankConditioning, e.Tanks()[0].Status)
}

func TestSetTankStatusStampsConditioningDateOnce(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "", 500))

	require.NoError(t, e.SetTankStatus("FV-01", models.TankConditioning))
	first := e.Tanks()[0].ConditioningDate
	require.NotEmpty(t, first)

	// Re-asserting the same status does not restamp.
	require.NoError(t, e.SetTankStatus("FV-01", models.TankConditioning))
	assert.Equal(t, first, e.Tanks()[0].ConditioningDate)

	// Status changes are not production actions.
	assert.Len(t, e.History(), 1)
}

func TestSetTankStatusRejectsUnknownStatus(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.ErrorIs(t, e.SetTankStatus("FV-01", "Exploded"), ErrValidation)
}

func TestFinalizeBatchResetsTank(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	seedMaltRecipe(t, e, 64)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))
	require.NoError(t, e.RecordQualityControl("FV-01", models.QualityControl{
		SensoryNotes: "Cítrico, amargor limpo", IsApproved: true, FinalPH: 4.4,
	}))

	require.NoError(t, e.FinalizeBatch("FV-01"))

	tank := e.Tanks()[0]
	assert.Equal(t, models.TankEmpty, tank.Status)
	assert.Equal(t, 0.0, tank.Volume)
	assert.Empty(t, tank.RecipeName)
	assert.Equal(t, "-", tank.BrewDate)
	assert.Empty(t, tank.Ingredients)
	assert.Nil(t, tank.QualityControl)
	assert.Equal(t, models.ResetCurrentGravity, tank.CurrentGravity)
	assert.Equal(t, models.ResetTemperature, tank.Temperature)
	assert.Equal(t, models.ResetPH, tank.PH)
	// Equipment identity survives the reset.
	assert.Equal(t, "FV-01", tank.TankID)
	assert.Equal(t, 1000.0, tank.Capacity)
}

func TestFinalizeBatchSnapshotResolvesMaterials(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	seedMaltRecipe(t, e, 64)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))
	require.NoError(t, e.RecordQualityControl("FV-01", models.QualityControl{
		SensoryNotes: "Aprovado", IsApproved: true,
	}))

	require.NoError(t, e.FinalizeBatch("FV-01"))

	history := e.History()
	require.NotEmpty(t, history)
	entry := history[0]
	assert.Equal(t, models.ActionFinish, entry.ActionType)
	require.NotNil(t, entry.BatchData)
	assert.Equal(t, "FV-01", entry.BatchData.TankID)
	assert.Equal(t, "IPA", entry.BatchData.RecipeSnapshot.Name)
	assert.Equal(t, "American IPA", entry.BatchData.RecipeSnapshot.Style)
	require.Len(t, entry.BatchData.RecipeSnapshot.Ingredients, 1)
	ing := entry.BatchData.RecipeSnapshot.Ingredients[0]
	assert.Equal(t, "Malte Pilsen", ing.Name)
	assert.Equal(t, 64.0, ing.Quantity)
	assert.Equal(t, "kg", ing.Unit)
	require.NotNil(t, entry.BatchData.QualityControl)
	assert.True(t, entry.BatchData.QualityControl.IsApproved)
}

func TestFinalizeBatchSnapshotSurvivesDeletedMaterial(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	seedMaltRecipe(t, e, 64)
	require.NoError(t, e.StartBatch("FV-01", "IPA", 800))

	// Material gone by finalize time; consumed amount is still reported.
	require.NoError(t, e.DeleteMaterial("malt-1"))
	require.NoError(t, e.FinalizeBatch("FV-01"))

	entry := e.History()[0]
	require.NotNil(t, entry.BatchData)
	require.Len(t, entry.BatchData.RecipeSnapshot.Ingredients, 1)
	ing := entry.BatchData.RecipeSnapshot.Ingredients[0]
	assert.Equal(t, "Desconhecido", ing.Name)
	assert.Equal(t, "N/A", ing.Unit)
	assert.Equal(t, "N/A", ing.Type)
	assert.Equal(t, 64.0, ing.Quantity)
}

func TestFinalizeEmptyTankRejected(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.ErrorIs(t, e.FinalizeBatch("FV-01"), ErrValidation)
	assert.Empty(t, e.History())
}

func TestCreateTankValidation(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.CreateTank(models.Tank{Capacity: 500})
	require.ErrorIs(t, err, ErrValidation)

	_, err = e.CreateTank(models.Tank{TankID: "FV-01"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateTankReplacesRecord(t *testing.T) {
	e := newTestEngine(t)
	seedTank(t, e, "FV-01", 1000)
	require.NoError(t, e.StartBatch("FV-01", "", 500))

	tank := e.Tanks()[0]
	tank.CurrentGravity = 1.020
	tank.Temperature = 18.5
	require.NoError(t, e.UpdateTank(tank))

	got := e.Tanks()[0]
	assert.Equal(t, 1.020, got.CurrentGravity)
	assert.Equal(t, 18.5, got.Temperature)

	tank.TankID = "FV-99"
	require.ErrorIs(t, e.UpdateTank(tank), ErrNotFound)
}
