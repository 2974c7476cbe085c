package models

// RawMaterial represents a raw material lot in the brewery stockroom
type RawMaterial struct {
	ID        string       `json:"id"`
	Name      string       `json:"name" validate:"required"`
	Type      MaterialType `json:"type"`
	Quantity  float64      `json:"quantity" validate:"gte=0"`
	Unit      string       `json:"unit" validate:"required"`
	LotNumber string       `json:"lotNumber"`
	// Specific properties
	AlphaAcid  float64 `json:"alphaAcid,omitempty"`  // hops only
	Generation int     `json:"generation,omitempty"` // yeast only
}

// MaterialType represents the category of a raw material
type MaterialType string

const (
	// Material types
	MaterialMalt    MaterialType = "MALT"
	MaterialHops    MaterialType = "HOPS"
	MaterialYeast   MaterialType = "YEAST"
	MaterialAdjunct MaterialType = "ADJUNCT"
)
