package models

// HistoryEntry represents one immutable audit record of an inventory-affecting action
type HistoryEntry struct {
	ID            string     `json:"id"`   // time-based
	Date          string     `json:"date"` // locale-formatted timestamp
	ActionType    ActionType `json:"actionType"`
	TankID        string     `json:"tankId"`
	RecipeName    string     `json:"recipeName"`
	VolumeChanged float64    `json:"volumeChanged"` // signed; negative only for sales
	Details       string     `json:"details"`
	BatchData     *BatchData `json:"batchData,omitempty"` // FINISH entries only
}

// ActionType represents the kind of production action recorded in history
type ActionType string

const (
	// Production action types
	ActionBrew     ActionType = "BREW"
	ActionKeg      ActionType = "KEG"
	ActionBottle   ActionType = "BOTTLE"
	ActionFinish   ActionType = "FINISH"
	ActionDispatch ActionType = "DISPATCH"
	ActionReturn   ActionType = "RETURN"
	ActionSale     ActionType = "SALE"
)

// BatchData represents the full batch report snapshot attached to a FINISH entry.
// It is a deep copy: later edits to materials or recipes never change it.
type BatchData struct {
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	TankID         string          `json:"tankId"`
	RecipeSnapshot RecipeSnapshot  `json:"recipeSnapshot"`
	QualityControl *QualityControl `json:"qualityControl,omitempty"`
}

// RecipeSnapshot represents the recipe as brewed, resolved at finalize time
type RecipeSnapshot struct {
	Name        string               `json:"name"`
	Style       string               `json:"style"`
	Ingredients []IngredientSnapshot `json:"ingredients"`
}

// IngredientSnapshot represents one consumed ingredient resolved to its material record
type IngredientSnapshot struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Type     string  `json:"type"`
}
