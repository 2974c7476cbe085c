package models

// Recipe represents a beer recipe with its ingredient bill scaled to BaseVolume
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name" validate:"required"`
	Style       string             `json:"style"`
	BaseVolume  float64            `json:"baseVolume"` // reference batch size in liters
	OG          float64            `json:"og"`
	FG          float64            `json:"fg"`
	ABV         string             `json:"abv"` // derived at save time, not recomputed live
	IBU         float64            `json:"ibu"`
	ShelfLife   int                `json:"shelfLife"` // days from dispatch until expiry
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
}

// RecipeIngredient represents one ingredient line of a recipe
type RecipeIngredient struct {
	MaterialID string       `json:"materialId"`
	Name       string       `json:"name"`
	Type       MaterialType `json:"type"`
	Quantity   float64      `json:"quantity"` // amount per BaseVolume liters
	Unit       string       `json:"unit"`
}

// Default recipe parameters applied when a field is left unset
const (
	DefaultBaseVolume = 100.0
	DefaultOG         = 1.050
	DefaultFG         = 1.010
	DefaultShelfLife  = 90
)
