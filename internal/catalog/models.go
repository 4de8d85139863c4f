// Package catalog stores ingredients, units, recipes and fridges.
package catalog

// Categories lists the ingredient categories offered by the catalog.
var Categories = []string{
	"Additives", "Condiments", "Dairy", "Eggs", "Flour", "Fruits", "Grains",
	"Herbs", "Meat", "Nuts", "Oils", "Pasta", "Poultry", "Salts", "Sauces",
	"Seafood", "Seeds", "Spices", "Sugars", "Vegetables",
}

// Ingredient is a catalog entry. Name is always title-cased.
type Ingredient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Unit is a measurement unit such as kilogram or tablespoon.
type Unit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Abbrev      string `json:"abbrev,omitempty"`
	Plural      string `json:"plural,omitempty"`
	Description string `json:"description,omitempty"`
}

// Recipe is a stored recipe. Ingredients is only populated by calls that
// say so (GetRecipeBySlug, AttachIngredients).
type Recipe struct {
	ID          int64              `json:"id"`
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Author      string             `json:"author"`
	Description string             `json:"description,omitempty"`
	Cuisine     string             `json:"cuisine,omitempty"`
	Steps       []string           `json:"steps,omitempty"`
	CreatedAt   string             `json:"created_at"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
}

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit,omitempty"`
}

// Fridge belongs to exactly one owner.
type Fridge struct {
	ID        int64  `json:"id"`
	Owner     string `json:"owner"`
	Visible   bool   `json:"visible"`
	CreatedAt string `json:"created_at"`
}

// FridgeIngredient is one inventory row of a fridge.
type FridgeIngredient struct {
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit,omitempty"`
}

// NewRecipe is the input to CreateRecipe.
type NewRecipe struct {
	Title       string                `validate:"required,max=250"`
	Author      string                `validate:"required,max=150"`
	Description string                `validate:"max=5000"`
	Cuisine     string                `validate:"max=100"`
	Steps       []string              `validate:"dive,max=2000"`
	Ingredients []NewRecipeIngredient `validate:"dive"`
}

// NewRecipeIngredient names an ingredient line of a new recipe. Unknown
// ingredient and unit names are created.
type NewRecipeIngredient struct {
	Name     string  `validate:"required,max=250"`
	Category string  `validate:"max=250"`
	Quantity float64 `validate:"gte=0"`
	Unit     string  `validate:"max=30"`
}
