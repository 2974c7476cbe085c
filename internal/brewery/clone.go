package brewery

import "brewja/internal/models"

// Deep-copy helpers. Reads hand out copies so presentation collaborators can
// never mutate the ledgers, and history snapshots stay independent of later
// edits to materials and recipes.

func cloneMaterials(in []models.RawMaterial) []models.RawMaterial {
	out := make([]models.RawMaterial, len(in))
	copy(out, in)
	return out
}

func cloneRecipes(in []models.Recipe) []models.Recipe {
	out := make([]models.Recipe, len(in))
	for i, r := range in {
		out[i] = cloneRecipe(r)
	}
	return out
}

func cloneRecipe(r models.Recipe) models.Recipe {
	if r.Ingredients != nil {
		ings := make([]models.RecipeIngredient, len(r.Ingredients))
		copy(ings, r.Ingredients)
		r.Ingredients = ings
	}
	return r
}

func cloneTanks(in []models.Tank) []models.Tank {
	out := make([]models.Tank, len(in))
	for i, t := range in {
		out[i] = cloneTank(t)
	}
	return out
}

func cloneTank(t models.Tank) models.Tank {
	if t.Ingredients != nil {
		ings := make([]models.BatchIngredient, len(t.Ingredients))
		copy(ings, t.Ingredients)
		t.Ingredients = ings
	}
	if t.QualityControl != nil {
		qc := *t.QualityControl
		t.QualityControl = &qc
	}
	return t
}

func cloneKegs(in []models.Keg) []models.Keg {
	out := make([]models.Keg, len(in))
	for i, k := range in {
		out[i] = cloneKeg(k)
	}
	return out
}

func cloneKeg(k models.Keg) models.Keg {
	if k.LocationHistory != nil {
		trail := make([]string, len(k.LocationHistory))
		copy(trail, k.LocationHistory)
		k.LocationHistory = trail
	}
	return k
}

func cloneHistory(in []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(in))
	for i, h := range in {
		if h.BatchData != nil {
			bd := *h.BatchData
			if bd.RecipeSnapshot.Ingredients != nil {
				ings := make([]models.IngredientSnapshot, len(bd.RecipeSnapshot.Ingredients))
				copy(ings, bd.RecipeSnapshot.Ingredients)
				bd.RecipeSnapshot.Ingredients = ings
			}
			if bd.QualityControl != nil {
				qc := *bd.QualityControl
				bd.QualityControl = &qc
			}
			h.BatchData = &bd
		}
		out[i] = h
	}
	return out
}
