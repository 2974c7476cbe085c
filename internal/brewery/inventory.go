package brewery

import (
	"brewja/internal/models"

	"github.com/google/uuid"
)

// materialUpdate is one pending deduction computed during the check phase.
type materialUpdate struct {
	index       int
	newQuantity float64
}

// reserveAndDeduct scales the recipe's ingredient bill to brewVolume and
// deducts it from stock. Check-then-apply: the first pass validates every
// line against current stock without mutating anything, so a shortfall on a
// later ingredient never leaves a partial deduction behind. Returns the
// per-material amounts consumed.
//
// A recipe without ingredient lines is a no-op: recipes are optional
// metadata, and the batch proceeds with an empty consumption record.
//
// Called with the engine lock held.
func (e *Engine) reserveAndDeduct(recipe *models.Recipe, brewVolume float64) ([]models.BatchIngredient, error) {
	if recipe == nil || len(recipe.Ingredients) == 0 {
		return nil, nil
	}

	base := recipe.BaseVolume
	if base <= 0 {
		base = models.DefaultBaseVolume
	}
	scale := brewVolume / base

	// First pass: check availability for every line.
	updates := make([]materialUpdate, 0, len(recipe.Ingredients))
	consumed := make([]models.BatchIngredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		required := ing.Quantity * scale
		idx := e.findMaterial(ing.MaterialID)
		if idx < 0 {
			return nil, wrapf(ErrInsufficientStock, "ingrediente %q não encontrado no estoque", ing.Name)
		}
		stock := e.materials[idx]
		if stock.Quantity < required {
			return nil, wrapf(ErrInsufficientStock, "estoque insuficiente de %q: necessário %.2f%s, disponível %.2f%s",
				stock.Name, required, stock.Unit, stock.Quantity, stock.Unit)
		}
		updates = append(updates, materialUpdate{index: idx, newQuantity: stock.Quantity - required})
		consumed = append(consumed, models.BatchIngredient{MaterialID: ing.MaterialID, Amount: required})
	}

	// Second pass: apply all deductions together.
	for _, u := range updates {
		e.materials[u.index].Quantity = u.newQuantity
	}
	return consumed, nil
}

func (e *Engine) findMaterial(id string) int {
	for i := range e.materials {
		if e.materials[i].ID == id {
			return i
		}
	}
	return -1
}

// ReceiveMaterial adds a raw-material lot to the stockroom. A blank id is
// filled with a generated one. Receipts are direct stock edits and are not
// logged to production history.
func (e *Engine) ReceiveMaterial(m models.RawMaterial) (models.RawMaterial, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkValid(m); err != nil {
		return models.RawMaterial{}, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	e.materials = append(e.materials, m)
	e.persist(keyMaterials)
	return m, nil
}

// UpdateMaterial replaces the stored record matching the material's id.
func (e *Engine) UpdateMaterial(m models.RawMaterial) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkValid(m); err != nil {
		return err
	}
	idx := e.findMaterial(m.ID)
	if idx < 0 {
		return wrapf(ErrNotFound, "material %s", m.ID)
	}
	e.materials[idx] = m
	e.persist(keyMaterials)
	return nil
}

// DeleteMaterial removes a material lot from the stockroom. Batch ingredient
// snapshots keep only the material id, so finalize resolves deleted
// materials best-effort.
func (e *Engine) DeleteMaterial(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findMaterial(id)
	if idx < 0 {
		return wrapf(ErrNotFound, "material %s", id)
	}
	e.materials = append(e.materials[:idx], e.materials[idx+1:]...)
	e.persist(keyMaterials)
	return nil
}

// Materials returns a copy of the raw-material collection.
func (e *Engine) Materials() []models.RawMaterial {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneMaterials(e.materials)
}
