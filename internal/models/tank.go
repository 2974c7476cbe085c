package models

// Tank represents a fermenter together with the batch currently inside it.
// A tank is reusable equipment: finalizing a batch resets the batch fields
// but keeps TankID and Capacity.
type Tank struct {
	ID               string            `json:"id"`
	TankID           string            `json:"tankId" validate:"required"` // display code, e.g. "FV-01"
	Capacity         float64           `json:"capacity" validate:"gt=0"`
	Status           TankStatus        `json:"status"`
	RecipeName       string            `json:"recipeName"`
	Volume           float64           `json:"volume"` // current liquid in liters
	BrewDate         string            `json:"brewDate"`
	ConditioningDate string            `json:"conditioningDate,omitempty"`
	OriginalGravity  float64           `json:"originalGravity"`
	CurrentGravity   float64           `json:"currentGravity"`
	TargetGravity    float64           `json:"targetGravity"`
	Temperature      float64           `json:"temperature"` // Celsius
	PH               float64           `json:"ph"`
	Ingredients      []BatchIngredient `json:"ingredients"` // consumed amounts for the active batch
	QualityControl   *QualityControl   `json:"qualityControl,omitempty"`
}

// BatchIngredient represents the amount of one material consumed by the active batch
type BatchIngredient struct {
	MaterialID string  `json:"materialId"`
	Amount     float64 `json:"amount"`
}

// QualityControl represents the quality-control annex of a batch
type QualityControl struct {
	SensoryNotes string  `json:"sensoryNotes"`
	IsApproved   bool    `json:"isApproved"`
	LabNotes     string  `json:"labNotes,omitempty"`
	FinalPH      float64 `json:"finalPh,omitempty"`
	FinalABV     float64 `json:"finalAbv,omitempty"`
}

// TankStatus represents the lifecycle state of a fermenter
type TankStatus string

const (
	// Tank statuses
	TankEmpty        TankStatus = "Empty"
	TankFermenting   TankStatus = "Fermenting"
	TankConditioning TankStatus = "Conditioning"
	TankPackaging    TankStatus = "Packaging"
)

// Reset values applied to a tank when a batch is finalized
const (
	ResetCurrentGravity = 1.000
	ResetTemperature    = 20.0
	ResetPH             = 7.0
)
