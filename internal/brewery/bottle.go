package brewery

import (
	"fmt"

	"brewja/internal/models"
)

// SellBottles deducts sold units from the lot matching recipe and label.
// The lot disappears when it reaches zero. SALE is the only action type
// recorded with a negative volume change.
func (e *Engine) SellBottles(recipeName, labelName string, count int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if count <= 0 {
		return wrapf(ErrValidation, "sale count must be positive, got %d", count)
	}

	// Sales are keyed by recipe and label only; bottle size is whatever the
	// matching lot holds. Iterate the deterministic list so ties resolve
	// stably.
	var key models.BottleKey
	found := false
	for _, lot := range e.bottleList() {
		if lot.RecipeName == recipeName && lot.LabelName == labelName {
			key = lot.Key()
			found = true
			break
		}
	}
	if !found {
		return wrapf(ErrLotNotFound, "lote %s / %s", recipeName, labelName)
	}

	lot := e.bottles[key]
	if count > lot.Count {
		return wrapf(ErrInsufficientStock, "quantidade insuficiente no lote %s / %s: solicitado %d, disponível %d",
			recipeName, labelName, count, lot.Count)
	}

	lot.Count -= count
	if lot.Count == 0 {
		delete(e.bottles, key)
	} else {
		e.bottles[key] = lot
	}

	label := labelName
	if label == "" {
		label = recipeName
	}
	e.appendHistory(models.ActionSale, "Bottle", recipeName, -(float64(count) * lot.VolumePerBottle),
		fmt.Sprintf("Venda de %d garrafas de %s", count, label), nil)
	e.persist(keyBottles, keyHistory)
	return nil
}

// Bottles returns the lots as a deterministic slice.
func (e *Engine) Bottles() []models.BottleLot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bottleList()
}
