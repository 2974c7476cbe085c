package brewery

import (
	"fmt"
	"strings"
	"time"

	"brewja/internal/models"
)

func (e *Engine) findKeg(id string) int {
	for i := range e.kegs {
		if e.kegs[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateKeg registers a keg in the fleet. Keg ids are globally unique
// business keys (the QR code content).
func (e *Engine) CreateKeg(k models.Keg) (models.Keg, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkValid(k); err != nil {
		return models.Keg{}, err
	}
	if e.findKeg(k.ID) >= 0 {
		return models.Keg{}, wrapf(ErrDuplicateKeg, "keg %s", k.ID)
	}
	if k.Status == "" {
		k.Status = models.KegEmpty
	}
	if k.FillDate == "" {
		k.FillDate = "-"
	}
	e.kegs = append(e.kegs, cloneKeg(k))
	e.persist(keyKegs)
	return k, nil
}

// isFactoryLocation classifies a free-text destination as the factory or
// stockroom by case-insensitive keyword containment. The keyword list is
// configuration, not policy baked into the engine.
func (e *Engine) isFactoryLocation(location string) bool {
	lower := strings.ToLower(location)
	for _, kw := range e.cfg.FactoryKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// DispatchKeg moves a keg to a new holder. Leaving the factory for the first
// time stamps the dispatch date, which starts the shelf-life countdown; the
// date is never overwritten until an empty return clears it.
func (e *Engine) DispatchKeg(kegID, location string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if location == "" {
		return wrapf(ErrValidation, "location is required")
	}
	idx := e.findKeg(kegID)
	if idx < 0 {
		return wrapf(ErrNotFound, "keg %s", kegID)
	}
	keg := &e.kegs[idx]

	movingOut := !e.isFactoryLocation(location)
	if movingOut {
		keg.Status = models.KegRetail
		if keg.DispatchDate == "" {
			keg.DispatchDate = time.Now().Format("2006-01-02")
		}
	} else {
		keg.Status = models.KegInHouse
	}
	keg.Customer = location
	keg.LocationHistory = append(keg.LocationHistory, location)

	e.appendHistory(models.ActionDispatch, kegID, keg.RecipeName, keg.Volume,
		fmt.Sprintf("Barril %s movido para %s", kegID, location), nil)
	e.persist(keyKegs, keyHistory)
	return nil
}

// ReturnKeg brings a keg back to the factory. A positive remainingVolume is
// a partial return: the keg keeps its batch identity and the difference is
// what was consumed away from the factory. Zero is a full/empty return and
// resets the keg for cleaning and refill.
func (e *Engine) ReturnKeg(kegID string, remainingVolume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if remainingVolume < 0 {
		return wrapf(ErrValidation, "remaining volume cannot be negative")
	}
	idx := e.findKeg(kegID)
	if idx < 0 {
		return wrapf(ErrNotFound, "keg %s", kegID)
	}
	keg := &e.kegs[idx]
	previousLocation := keg.Customer
	if previousLocation == "" {
		previousLocation = "Desconhecido"
	}
	previousVolume := keg.Volume

	if remainingVolume > 0 {
		keg.Status = models.KegInHouse
		keg.Volume = remainingVolume
		keg.Customer = factory
		keg.LocationHistory = append(keg.LocationHistory,
			fmt.Sprintf("Retorno Parcial (%gL): %s -> %s", remainingVolume, previousLocation, factory))

		e.appendHistory(models.ActionReturn, kegID, keg.RecipeName, previousVolume-remainingVolume,
			fmt.Sprintf("Barril %s retornou com %gL de sobra de %s", kegID, remainingVolume, previousLocation), nil)
	} else {
		recipeName := keg.RecipeName
		keg.Status = models.KegEmpty
		keg.Volume = 0
		keg.RecipeName = ""
		keg.BatchID = ""
		keg.FillDate = "-"
		keg.DispatchDate = ""
		keg.Customer = factory
		keg.LocationHistory = append(keg.LocationHistory,
			fmt.Sprintf("Retorno Vazio: %s -> %s", previousLocation, factory))

		e.appendHistory(models.ActionReturn, kegID, recipeName, previousVolume,
			fmt.Sprintf("Barril %s voltou vazio de %s", kegID, previousLocation), nil)
	}
	e.persist(keyKegs, keyHistory)
	return nil
}

// BottleFromKeg converts keg contents into a bottle lot. A residue at or
// under the configured epsilon counts as emptied: the keg loses its batch
// identity but keeps its dispatch date until an empty return clears it.
func (e *Engine) BottleFromKeg(kegID string, bottleCount int, bottleVolume float64, labelName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if labelName == "" {
		return wrapf(ErrValidation, "label name is required")
	}
	if bottleCount <= 0 || bottleVolume <= 0 {
		return wrapf(ErrValidation, "bottle count and volume must be positive")
	}
	idx := e.findKeg(kegID)
	if idx < 0 {
		return wrapf(ErrNotFound, "keg %s", kegID)
	}
	keg := &e.kegs[idx]
	totalNeeded := float64(bottleCount) * bottleVolume
	if keg.Volume < totalNeeded {
		return wrapf(ErrInsufficientStock, "volume insuficiente no barril %s: necessário %.1fL, disponível %.1fL",
			kegID, totalNeeded, keg.Volume)
	}

	recipeName := keg.RecipeName
	remaining := keg.Volume - totalNeeded
	if remaining <= e.cfg.KegEmptyEpsilon {
		keg.Volume = 0
		keg.Status = models.KegEmpty
		keg.RecipeName = ""
		keg.BatchID = ""
		keg.FillDate = "-"
		keg.Customer = factory
	} else {
		keg.Volume = remaining
	}

	e.addBottles(recipeName, labelName, bottleVolume, bottleCount)

	e.appendHistory(models.ActionBottle, kegID, recipeName, totalNeeded,
		fmt.Sprintf("Envase de %d garrafas (%gL) via Barril %s", bottleCount, bottleVolume, kegID), nil)
	e.persist(keyKegs, keyBottles, keyHistory)
	return nil
}

// Kegs returns a copy of the keg fleet.
func (e *Engine) Kegs() []models.Keg {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneKegs(e.kegs)
}
