package service

import (
	"context"

	"github.com/plateup/plateup-server/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteAllUsers(ctx context.Context) (int64, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SearchParams carries the optional knobs of one catalog search. Nil pointer
// fields mean "no constraint".
type SearchParams struct {
	// Query is the free-text search term, matched against name, ingredients
	// and tags. Nil or empty means no text constraint.
	Query *string

	// CostCeiling keeps only recipes with cost <= ceiling.
	CostCeiling *float64

	// TimeHCeiling and TimeMinCeiling form the cooking-time ceiling pair.
	// The filter only applies when both are set.
	TimeHCeiling   *int
	TimeMinCeiling *int

	// RequireInventory keeps only recipes every ingredient of which exists
	// in UserID's inventory with a positive quantity.
	RequireInventory bool
	UserID           string

	// Limit and Page control the final slice. Limit defaults to 20 when
	// non-positive, Page to 0.
	Limit int
	Page  int
}

type RecipeService interface {
	Search(ctx context.Context, params SearchParams) (models.SearchResult, error)
	AddRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, error)
	AddInstruction(ctx context.Context, instruction models.Instruction) error
}

// CheckResult is the outcome of a successful check-and-deduct call.
type CheckResult int

const (
	// CheckResultUpdated means every required ingredient was available and
	// the user's inventory has been deducted.
	CheckResultUpdated CheckResult = iota

	// CheckResultQueued means at least one ingredient was short and the
	// missing amounts were queued onto the shopping list instead.
	CheckResultQueued
)

func (r CheckResult) String() string {
	if r == CheckResultQueued {
		return "queued"
	}
	return "updated"
}

type PantryService interface {
	GetInventory(ctx context.Context, userID string) (models.PantryDoc, error)
	ReplaceInventory(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error)
	GetShopping(ctx context.Context, userID string) (models.PantryDoc, error)
	ReplaceShopping(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error)

	// CheckAndDeduct reconciles a recipe's requirements against the user's
	// inventory: deducts when everything is available, queues shortfalls
	// onto the shopping list otherwise. Fails with ErrUnitMismatch on the
	// first unit conflict, committing nothing.
	CheckAndDeduct(ctx context.Context, recipeID, userID string) (CheckResult, error)

	// Flash merges the user's shopping list into the inventory, clears the
	// list and returns the resulting inventory snapshot.
	Flash(ctx context.Context, userID string) (models.PantryDoc, error)
}

type ImportService interface {
	// ImportRecipes fetches one batch from the external provider and stores
	// every recipe not yet present in the catalog. Returns the number of
	// recipes actually imported.
	ImportRecipes(ctx context.Context) (int, error)
}

// RecipeProvider is the external catalog source consumed by the import
// pipeline.
type RecipeProvider interface {
	FetchRandomRecipes(ctx context.Context, number int) ([]models.ProviderRecipe, error)
}

// WelcomeMailer delivers the onboarding email. A send failure aborts user
// creation.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, user models.User, plainPassword string) error
}

// DetailCache is the optional read-through cache in front of the recipe
// detail lookup. Implementations must be safe to call when the backing
// store is unavailable (degrade to miss).
type DetailCache interface {
	GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, bool)
	SetRecipeDetail(ctx context.Context, recipeID string, detail models.RecipeDetail)
	InvalidateRecipeDetail(ctx context.Context, recipeID string)
}
