package brewery

import (
	"math"
	"sort"
	"time"

	"brewja/internal/models"
)

// Shelf life assumed for kegs whose recipe no longer exists.
const fallbackShelfLifeDays = 30

// RecipeProduction summarizes live stock for one recipe across tanks, kegs
// and bottles.
type RecipeProduction struct {
	RecipeName   string  `json:"recipeName"`
	TankVolume   float64 `json:"tankVolume"` // liquid still in fermenters
	KegVolume    float64 `json:"kegVolume"`  // liquid in non-empty kegs
	KegsInHouse  int     `json:"kegsInHouse"`
	KegsOut      int     `json:"kegsOut"` // retail + distributor
	BottleCount  int     `json:"bottleCount"`
	BottleLiters float64 `json:"bottleLiters"`
}

// ProductionStats derives per-recipe stock totals from the current ledgers.
// Pure read, no mutation.
func (e *Engine) ProductionStats() []RecipeProduction {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := make(map[string]*RecipeProduction)
	get := func(name string) *RecipeProduction {
		if name == "" {
			return nil
		}
		s, ok := stats[name]
		if !ok {
			s = &RecipeProduction{RecipeName: name}
			stats[name] = s
		}
		return s
	}

	for _, t := range e.tanks {
		if t.Status == models.TankEmpty {
			continue
		}
		if s := get(t.RecipeName); s != nil {
			s.TankVolume += t.Volume
		}
	}
	for _, k := range e.kegs {
		if k.Status == models.KegEmpty || k.Status == models.KegCleaning {
			continue
		}
		s := get(k.RecipeName)
		if s == nil {
			continue
		}
		s.KegVolume += k.Volume
		switch k.Status {
		case models.KegInHouse:
			s.KegsInHouse++
		case models.KegRetail, models.KegDistributor:
			s.KegsOut++
		}
	}
	for _, lot := range e.bottles {
		if s := get(lot.RecipeName); s != nil {
			s.BottleCount += lot.Count
			s.BottleLiters += float64(lot.Count) * lot.VolumePerBottle
		}
	}

	out := make([]RecipeProduction, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecipeName < out[j].RecipeName })
	return out
}

// KegDaysRemaining returns the shelf-life countdown for a dispatched keg:
// days until dispatchDate + shelfLife. Negative means expired at point of
// sale. Returns nil before the first dispatch.
func (e *Engine) KegDaysRemaining(kegID string) (*int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findKeg(kegID)
	if idx < 0 {
		return nil, wrapf(ErrNotFound, "keg %s", kegID)
	}
	keg := e.kegs[idx]
	if keg.DispatchDate == "" {
		return nil, nil
	}
	dispatched, err := time.Parse("2006-01-02", keg.DispatchDate)
	if err != nil {
		return nil, wrapf(ErrValidation, "keg %s has unparseable dispatch date %q", kegID, keg.DispatchDate)
	}

	shelfLife := fallbackShelfLifeDays
	if recipe := e.findRecipeByName(keg.RecipeName); recipe != nil && recipe.ShelfLife > 0 {
		shelfLife = recipe.ShelfLife
	}
	expiry := dispatched.AddDate(0, 0, shelfLife)
	days := int(math.Ceil(time.Until(expiry).Hours() / 24))
	return &days, nil
}
