package brewery

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"brewja/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Storage keys, one JSON document per collection.
const (
	keyMaterials = "brewja_materials"
	keyRecipes   = "brewja_recipes"
	keyTanks     = "brewja_tanks"
	keyKegs      = "brewja_kegs"
	keyBottles   = "brewja_bottles"
	keyHistory   = "brewja_history"
)

// Documents is the persistence collaborator: one JSON-serializable document
// per collection. Load falls back to the untouched zero value of out when
// nothing is stored or the stored data is malformed.
type Documents interface {
	Load(key string, out any) error
	Save(key string, v any) error
}

// Snapshot is a deep copy of the full engine state, safe to hand to
// presentation collaborators.
type Snapshot struct {
	Materials []models.RawMaterial  `json:"materials"`
	Recipes   []models.Recipe       `json:"recipes"`
	Tanks     []models.Tank         `json:"tanks"`
	Kegs      []models.Keg          `json:"kegs"`
	Bottles   []models.BottleLot    `json:"bottles"`
	History   []models.HistoryEntry `json:"history"`
}

// Engine owns the six production ledgers and applies every state transition
// as a single validated transaction. All methods are safe for concurrent use;
// a single mutex serializes writers since the ledgers share cross-entity
// invariants.
type Engine struct {
	mu    sync.Mutex
	cfg   Config
	log   *logrus.Logger
	store Documents

	materials []models.RawMaterial
	recipes   []models.Recipe
	tanks     []models.Tank
	kegs      []models.Keg
	bottles   map[models.BottleKey]models.BottleLot
	history   []models.HistoryEntry

	// OnChange, when set, receives a snapshot after every successful
	// mutation. It runs on the mutating goroutine and must not call back
	// into the engine.
	OnChange func(Snapshot)
}

var validate = validator.New()

// New creates an engine with empty ledgers.
func New(store Documents, log *logrus.Logger, cfg Config) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		cfg:     cfg.withDefaults(),
		log:     log,
		store:   store,
		bottles: make(map[models.BottleKey]models.BottleLot),
	}
}

// Load populates the ledgers from the document store. Malformed or missing
// documents leave the corresponding collection empty.
func (e *Engine) Load() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return
	}
	e.loadDoc(keyMaterials, &e.materials)
	e.loadDoc(keyRecipes, &e.recipes)
	e.loadDoc(keyTanks, &e.tanks)
	e.loadDoc(keyKegs, &e.kegs)
	e.loadDoc(keyHistory, &e.history)

	var lots []models.BottleLot
	e.loadDoc(keyBottles, &lots)
	e.bottles = make(map[models.BottleKey]models.BottleLot, len(lots))
	for _, lot := range lots {
		// Merge duplicate keys rather than letting the last one win.
		if existing, ok := e.bottles[lot.Key()]; ok {
			lot.Count += existing.Count
		}
		e.bottles[lot.Key()] = lot
	}
}

func (e *Engine) loadDoc(key string, out any) {
	if err := e.store.Load(key, out); err != nil {
		e.log.WithFields(logrus.Fields{"key": key}).Warnf("load failed, starting empty: %v", err)
	}
}

// persist flushes the named collections. Persistence is fire-and-forget:
// a failed save is logged and the in-memory state stays authoritative.
// Called with the engine lock held, after the mutation has been applied.
func (e *Engine) persist(keys ...string) {
	if e.store != nil {
		for _, key := range keys {
			var v any
			switch key {
			case keyMaterials:
				v = e.materials
			case keyRecipes:
				v = e.recipes
			case keyTanks:
				v = e.tanks
			case keyKegs:
				v = e.kegs
			case keyBottles:
				v = e.bottleList()
			case keyHistory:
				v = e.history
			}
			if err := e.store.Save(key, v); err != nil {
				e.log.WithFields(logrus.Fields{"key": key}).Warnf("save failed: %v", err)
			}
		}
	}
	if e.OnChange != nil {
		e.OnChange(e.snapshotLocked())
	}
}

// appendHistory prepends an immutable audit entry (newest first).
func (e *Engine) appendHistory(action models.ActionType, entityID, recipeName string, volumeChanged float64, details string, batchData *models.BatchData) {
	if entityID == "" {
		entityID = "N/A"
	}
	if recipeName == "" {
		recipeName = "N/A"
	}
	entry := models.HistoryEntry{
		ID:            strconv.FormatInt(time.Now().UnixNano(), 10),
		Date:          time.Now().Format("02/01/2006 15:04:05"),
		ActionType:    action,
		TankID:        entityID,
		RecipeName:    recipeName,
		VolumeChanged: volumeChanged,
		Details:       details,
		BatchData:     batchData,
	}
	e.history = append([]models.HistoryEntry{entry}, e.history...)
}

// History returns the audit log, most recent first.
func (e *Engine) History() []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneHistory(e.history)
}

// Snapshot returns a deep copy of all six collections.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Materials: cloneMaterials(e.materials),
		Recipes:   cloneRecipes(e.recipes),
		Tanks:     cloneTanks(e.tanks),
		Kegs:      cloneKegs(e.kegs),
		Bottles:   e.bottleList(),
		History:   cloneHistory(e.history),
	}
}

// bottleList flattens the lot map into a deterministic slice.
func (e *Engine) bottleList() []models.BottleLot {
	lots := make([]models.BottleLot, 0, len(e.bottles))
	for _, lot := range e.bottles {
		lots = append(lots, lot)
	}
	sort.Slice(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if a.RecipeName != b.RecipeName {
			return a.RecipeName < b.RecipeName
		}
		if a.LabelName != b.LabelName {
			return a.LabelName < b.LabelName
		}
		return a.VolumePerBottle < b.VolumePerBottle
	})
	return lots
}

func checkValid(v any) error {
	if err := validate.Struct(v); err != nil {
		return wrapf(ErrValidation, "%v", err)
	}
	return nil
}
