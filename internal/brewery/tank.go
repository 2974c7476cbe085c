package brewery

import (
	"fmt"
	"time"

	"brewja/internal/models"

	"github.com/google/uuid"
)

func (e *Engine) findTank(id string) int {
	for i := range e.tanks {
		if e.tanks[i].TankID == id || e.tanks[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateTank registers a new fermenter. Tanks start empty; batch telemetry
// fields left at zero get the standard idle values.
func (e *Engine) CreateTank(t models.Tank) (models.Tank, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkValid(t); err != nil {
		return models.Tank{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.TankEmpty
	}
	if t.BrewDate == "" {
		t.BrewDate = "-"
	}
	if t.OriginalGravity == 0 {
		t.OriginalGravity = models.DefaultOG
	}
	if t.TargetGravity == 0 {
		t.TargetGravity = models.DefaultFG
	}
	if t.CurrentGravity == 0 {
		t.CurrentGravity = models.ResetCurrentGravity
	}
	if t.Temperature == 0 {
		t.Temperature = models.ResetTemperature
	}
	if t.PH == 0 {
		t.PH = models.ResetPH
	}
	e.tanks = append(e.tanks, cloneTank(t))
	e.persist(keyTanks)
	return t, nil
}

// DeleteTank removes a fermenter from the floor.
func (e *Engine) DeleteTank(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findTank(id)
	if idx < 0 {
		return wrapf(ErrNotFound, "tank %s", id)
	}
	e.tanks = append(e.tanks[:idx], e.tanks[idx+1:]...)
	e.persist(keyTanks)
	return nil
}

// UpdateTank replaces the stored record matched by display code. This is the
// generic mutator for telemetry (gravity, temperature, pH) and management
// edits (capacity, recipe reassignment); no validation beyond existence and
// basic field checks.
func (e *Engine) UpdateTank(t models.Tank) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkValid(t); err != nil {
		return err
	}
	idx := e.findTank(t.TankID)
	if idx < 0 {
		return wrapf(ErrNotFound, "tank %s", t.TankID)
	}
	e.tanks[idx] = cloneTank(t)
	e.persist(keyTanks)
	return nil
}

// StartBatch begins a new production run in an available tank. The recipe is
// optional metadata: when it exists its ingredient bill is deducted from
// stock (all-or-nothing) and its gravities seed the batch; otherwise the
// standard defaults apply. On any failure the tank, the stockroom and the
// history are left untouched.
func (e *Engine) StartBatch(tankID, recipeName string, brewVolume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findTank(tankID)
	if idx < 0 {
		return wrapf(ErrNotFound, "tank %s", tankID)
	}
	if brewVolume <= 0 {
		return wrapf(ErrValidation, "brew volume must be positive, got %.2f", brewVolume)
	}
	tank := &e.tanks[idx]
	if tank.Status != models.TankEmpty {
		return wrapf(ErrValidation, "tank %s already holds an active batch", tankID)
	}
	if brewVolume > tank.Capacity {
		return wrapf(ErrCapacityExceeded, "volume declarado (%.0fL) excede a capacidade do tanque (%.0fL)", brewVolume, tank.Capacity)
	}

	recipe := e.findRecipeByName(recipeName)
	consumed, err := e.reserveAndDeduct(recipe, brewVolume)
	if err != nil {
		return err
	}

	og, fg := models.DefaultOG, models.DefaultFG
	if recipe != nil {
		og, fg = recipe.OG, recipe.FG
	}

	// The internal id doubles as the batch id; the display code stays.
	tank.ID = fmt.Sprintf("BATCH-%d", time.Now().UnixMilli())
	tank.Status = models.TankFermenting
	tank.RecipeName = recipeName
	tank.Volume = brewVolume
	tank.BrewDate = time.Now().Format(time.RFC3339)
	tank.ConditioningDate = ""
	tank.OriginalGravity = og
	tank.TargetGravity = fg
	tank.CurrentGravity = og
	tank.Temperature = models.ResetTemperature
	tank.Ingredients = consumed
	tank.QualityControl = nil

	e.appendHistory(models.ActionBrew, tank.TankID, recipeName, brewVolume,
		fmt.Sprintf("Nova Brassagem (OG: %.3f)", og), nil)
	if len(consumed) > 0 {
		e.persist(keyMaterials, keyTanks, keyHistory)
	} else {
		e.persist(keyTanks, keyHistory)
	}
	return nil
}

// SetTankStatus is the operator override for moving a batch along its
// lifecycle. Entering Conditioning for the first time stamps the maturation
// start date. Status changes move no inventory and are not logged.
func (e *Engine) SetTankStatus(tankID string, status models.TankStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch status {
	case models.TankEmpty, models.TankFermenting, models.TankConditioning, models.TankPackaging:
	default:
		return wrapf(ErrValidation, "unknown tank status %q", status)
	}
	idx := e.findTank(tankID)
	if idx < 0 {
		return wrapf(ErrNotFound, "tank %s", tankID)
	}
	tank := &e.tanks[idx]
	if status == models.TankConditioning && tank.Status != models.TankConditioning {
		tank.ConditioningDate = time.Now().Format(time.RFC3339)
	}
	tank.Status = status
	e.persist(keyTanks)
	return nil
}

// RecordQualityControl attaches or replaces the QC annex of the active
// batch. It is read back only as part of the FINISH snapshot.
func (e *Engine) RecordQualityControl(tankID string, qc models.QualityControl) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findTank(tankID)
	if idx < 0 {
		return wrapf(ErrNotFound, "tank %s", tankID)
	}
	e.tanks[idx].QualityControl = &qc
	e.persist(keyTanks)
	return nil
}

// FinalizeBatch closes the production run: it captures a deep batch report
// snapshot into the history and resets the tank to empty. Capacity and
// display code persist, the tank is reusable equipment.
func (e *Engine) FinalizeBatch(tankID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findTank(tankID)
	if idx < 0 {
		return wrapf(ErrNotFound, "tank %s", tankID)
	}
	tank := &e.tanks[idx]
	if tank.Status == models.TankEmpty {
		return wrapf(ErrValidation, "tank %s has no batch to finalize", tankID)
	}

	e.appendHistory(models.ActionFinish, tank.TankID, tank.RecipeName, tank.Volume,
		fmt.Sprintf("Leva finalizada no tanque %s", tank.TankID), e.batchSnapshot(tank))

	tank.Status = models.TankEmpty
	tank.Volume = 0
	tank.RecipeName = ""
	tank.BrewDate = "-"
	tank.ConditioningDate = ""
	tank.Ingredients = []models.BatchIngredient{}
	tank.QualityControl = nil
	tank.CurrentGravity = models.ResetCurrentGravity
	tank.OriginalGravity = models.DefaultOG
	tank.TargetGravity = models.DefaultFG
	tank.Temperature = models.ResetTemperature
	tank.PH = models.ResetPH

	e.persist(keyTanks, keyHistory)
	return nil
}

// batchSnapshot resolves the consumed ingredients against current material
// records, best-effort: materials deleted since brew day come out as
// "Desconhecido". The result is fully independent of the live collections.
func (e *Engine) batchSnapshot(tank *models.Tank) *models.BatchData {
	style := "N/A"
	if recipe := e.findRecipeByName(tank.RecipeName); recipe != nil {
		style = recipe.Style
	}

	ingredients := make([]models.IngredientSnapshot, 0, len(tank.Ingredients))
	for _, ing := range tank.Ingredients {
		snap := models.IngredientSnapshot{Name: "Desconhecido", Quantity: ing.Amount, Unit: "N/A", Type: "N/A"}
		if idx := e.findMaterial(ing.MaterialID); idx >= 0 {
			m := e.materials[idx]
			snap.Name = m.Name
			snap.Unit = m.Unit
			snap.Type = string(m.Type)
		}
		ingredients = append(ingredients, snap)
	}

	data := &models.BatchData{
		StartDate: tank.BrewDate,
		EndDate:   time.Now().Format(time.RFC3339),
		TankID:    tank.TankID,
		RecipeSnapshot: models.RecipeSnapshot{
			Name:        tank.RecipeName,
			Style:       style,
			Ingredients: ingredients,
		},
	}
	if tank.QualityControl != nil {
		qc := *tank.QualityControl
		data.QualityControl = &qc
	}
	return data
}

// Tanks returns a copy of the fermenter collection.
func (e *Engine) Tanks() []models.Tank {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneTanks(e.tanks)
}
