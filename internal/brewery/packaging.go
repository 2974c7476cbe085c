package brewery

import (
	"fmt"
	"time"

	"brewja/internal/models"
)

// Factory location strings stamped on freshly filled kegs.
const (
	factoryStock    = "Fábrica (Estoque)"
	factory         = "Fábrica"
	filledAtFactory = "Envasado na Fábrica"
)

// PackageToKeg transfers volume from a tank into an empty keg. The keg must
// already be registered in the fleet; filling an unknown keg would leak the
// tank volume into nowhere.
func (e *Engine) PackageToKeg(tankID, kegID string, volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tankIdx := e.findTank(tankID)
	if tankIdx < 0 {
		return wrapf(ErrNotFound, "tank %s", tankID)
	}
	if volume <= 0 {
		return wrapf(ErrValidation, "keg volume must be positive, got %.2f", volume)
	}
	tank := &e.tanks[tankIdx]
	if tank.Volume < volume {
		return wrapf(ErrInsufficientStock, "volume insuficiente no tanque %s: necessário %.1fL, disponível %.1fL",
			tank.TankID, volume, tank.Volume)
	}
	kegIdx := e.findKeg(kegID)
	if kegIdx < 0 {
		return wrapf(ErrNotFound, "keg %s", kegID)
	}
	keg := &e.kegs[kegIdx]
	if keg.Status != models.KegEmpty {
		return wrapf(ErrKegNotAvailable, "barril %s já está cheio ou em uso", kegID)
	}

	tank.Volume -= volume
	keg.BatchID = tank.ID
	keg.RecipeName = tank.RecipeName
	keg.FillDate = time.Now().Format("2006-01-02")
	keg.Volume = volume
	keg.Status = models.KegInHouse
	keg.Customer = factoryStock
	keg.LocationHistory = append(keg.LocationHistory, filledAtFactory)

	e.appendHistory(models.ActionKeg, tank.TankID, tank.RecipeName, volume,
		fmt.Sprintf("Barril: %s", kegID), nil)
	e.persist(keyTanks, keyKegs, keyHistory)
	return nil
}

// PackageToBottles transfers volume from a tank into a bottle lot, merging
// into an existing lot when recipe, label and bottle size all match.
func (e *Engine) PackageToBottles(tankID string, count int, volumePerBottle float64, labelName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if labelName == "" {
		return wrapf(ErrValidation, "label name is required")
	}
	if count <= 0 || volumePerBottle <= 0 {
		return wrapf(ErrValidation, "bottle count and volume must be positive")
	}
	tankIdx := e.findTank(tankID)
	if tankIdx < 0 {
		return wrapf(ErrNotFound, "tank %s", tankID)
	}
	tank := &e.tanks[tankIdx]
	total := float64(count) * volumePerBottle
	if tank.Volume < total {
		return wrapf(ErrInsufficientStock, "volume insuficiente no tanque %s: necessário %.1fL, disponível %.1fL",
			tank.TankID, total, tank.Volume)
	}

	tank.Volume -= total
	e.addBottles(tank.RecipeName, labelName, volumePerBottle, count)

	e.appendHistory(models.ActionBottle, tank.TankID, tank.RecipeName, total,
		fmt.Sprintf("%d garrafas (%gL) - Rótulo: %s", count, volumePerBottle, labelName), nil)
	e.persist(keyTanks, keyBottles, keyHistory)
	return nil
}

// addBottles merges count bottles into the lot keyed by (recipe, label,
// size), creating the lot on first packaging. The map makes the at-most-one-
// lot-per-key invariant structural. Called with the engine lock held.
func (e *Engine) addBottles(recipeName, labelName string, volumePerBottle float64, count int) {
	key := models.BottleKey{RecipeName: recipeName, LabelName: labelName, VolumePerBottle: volumePerBottle}
	lot, ok := e.bottles[key]
	if !ok {
		lot = models.BottleLot{RecipeName: recipeName, LabelName: labelName, VolumePerBottle: volumePerBottle}
	}
	lot.Count += count
	e.bottles[key] = lot
}
