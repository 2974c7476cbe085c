package brewery

import (
	"fmt"

	"brewja/internal/models"

	"github.com/google/uuid"
)

// abvFromGravity estimates alcohol by volume from the gravity drop.
func abvFromGravity(og, fg float64) string {
	return fmt.Sprintf("%.1f", (og-fg)*131.25)
}

// SaveRecipe creates or updates a recipe. The ABV is derived here, at save
// time, and is not recomputed when gravities change later. Zero-valued
// BaseVolume and ShelfLife fall back to the standard defaults.
func (e *Engine) SaveRecipe(r models.Recipe) (models.Recipe, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkValid(r); err != nil {
		return models.Recipe{}, err
	}
	if r.BaseVolume <= 0 {
		r.BaseVolume = models.DefaultBaseVolume
	}
	if r.ShelfLife <= 0 {
		r.ShelfLife = models.DefaultShelfLife
	}
	r.ABV = abvFromGravity(r.OG, r.FG)

	if r.ID == "" {
		r.ID = uuid.NewString()
		e.recipes = append(e.recipes, cloneRecipe(r))
	} else {
		idx := e.findRecipeByID(r.ID)
		if idx < 0 {
			return models.Recipe{}, wrapf(ErrNotFound, "recipe %s", r.ID)
		}
		e.recipes[idx] = cloneRecipe(r)
	}
	e.persist(keyRecipes)
	return r, nil
}

// DeleteRecipe removes a recipe. Tanks and kegs reference recipes by name
// only, so running batches are unaffected.
func (e *Engine) DeleteRecipe(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findRecipeByID(id)
	if idx < 0 {
		return wrapf(ErrNotFound, "recipe %s", id)
	}
	e.recipes = append(e.recipes[:idx], e.recipes[idx+1:]...)
	e.persist(keyRecipes)
	return nil
}

// Recipes returns a copy of the recipe collection.
func (e *Engine) Recipes() []models.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneRecipes(e.recipes)
}

func (e *Engine) findRecipeByID(id string) int {
	for i := range e.recipes {
		if e.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// findRecipeByName resolves the name-based cross-reference used by tanks and
// kegs. Returns nil when no recipe matches; callers treat recipes as
// optional metadata.
func (e *Engine) findRecipeByName(name string) *models.Recipe {
	for i := range e.recipes {
		if e.recipes[i].Name == name {
			return &e.recipes[i]
		}
	}
	return nil
}
