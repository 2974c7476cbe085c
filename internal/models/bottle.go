package models

// BottleLot represents a stock pile of bottled product sharing recipe, label and size
type BottleLot struct {
	RecipeName      string  `json:"recipeName"`
	LabelName       string  `json:"labelName"`
	VolumePerBottle float64 `json:"volumePerBottle"` // liters, usually 0.6 or 0.5
	Count           int     `json:"count"`
}

// BottleKey identifies a bottle lot. At most one lot exists per key.
type BottleKey struct {
	RecipeName      string
	LabelName       string
	VolumePerBottle float64
}

// Key returns the composite key of the lot
func (b BottleLot) Key() BottleKey {
	return BottleKey{RecipeName: b.RecipeName, LabelName: b.LabelName, VolumePerBottle: b.VolumePerBottle}
}
