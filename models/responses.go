package models

// SearchResult is the response body of the recipe search endpoint.
// IsRandom reports whether the page was drawn by the random fallback rather
// than produced by a true match.
type SearchResult struct {
	Recipes  []Recipe `json:"recipes"`
	IsRandom bool     `json:"is_random"`
}

// RecipeDetail is the response body of the recipe detail endpoint:
// the preview row plus the instruction steps sorted ascending by step number.
type RecipeDetail struct {
	RecipePreview     Recipe            `json:"recipe_preview"`
	RecipeInstruction []InstructionView `json:"recipe_instruction"`
}

// InventoryResponse wraps a user's inventory document.
type InventoryResponse struct {
	Inventory PantryDoc `json:"inventory"`
}

// ShoppingResponse wraps a user's shopping-list document.
type ShoppingResponse struct {
	Shopping PantryDoc `json:"shopping"`
}

// UsersResponse wraps the full user listing.
type UsersResponse struct {
	Users []User `json:"users"`
}
