package models

// Keg represents a uniquely identified pressure vessel tracked by location
type Keg struct {
	ID              string    `json:"id" validate:"required"` // business key, unique across the fleet
	Capacity        float64   `json:"capacity" validate:"gt=0"`
	BatchID         string    `json:"batchId"`
	RecipeName      string    `json:"recipeName"`
	FillDate        string    `json:"fillDate"`
	Volume          float64   `json:"volume"`
	Status          KegStatus `json:"status"`
	Customer        string    `json:"customer,omitempty"`        // current holder/location
	DispatchDate    string    `json:"dispatchDate,omitempty"`    // first time it left the factory
	LocationHistory []string  `json:"locationHistory,omitempty"` // append-only trail
}

// KegStatus represents where a keg currently is in its lifecycle
type KegStatus string

const (
	// Keg statuses
	KegEmpty       KegStatus = "Empty"
	KegInHouse     KegStatus = "In-House"
	KegRetail      KegStatus = "Retail"
	KegDistributor KegStatus = "Distributor"
	KegCleaning    KegStatus = "Cleaning"
)
