package store

import (
	"context"

	"github.com/plateup/plateup-server/models"
)

// SearchField names a recipe column the search engine is allowed to match
// LIKE patterns against. The set is closed so that user input can never
// select an arbitrary column.
type SearchField string

const (
	SearchFieldName        SearchField = "name"
	SearchFieldIngredients SearchField = "ingredients"
	SearchFieldTags        SearchField = "tags"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteAllUsers(ctx context.Context) (int64, error)
}

type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	GetRecipeByID(ctx context.Context, id string) (models.Recipe, error)
	FindRecipeByName(ctx context.Context, name string) (models.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]models.Recipe, error)

	// SearchByPattern returns all recipes whose field column matches the
	// given SQL LIKE pattern, in storage order.
	SearchByPattern(ctx context.Context, field SearchField, pattern string) ([]models.Recipe, error)
}

type InstructionRepository interface {
	// InsertInstruction stores one step; a duplicate (recipe_id, step_num)
	// pair is silently ignored — first write wins.
	InsertInstruction(ctx context.Context, instruction models.Instruction) error
	GetInstructionsByRecipeID(ctx context.Context, recipeID string) ([]models.Instruction, error)
}

// PantryRepository persists the two per-user ingredient collections
// (inventory and shopping list). Multi-row mutations are transactional:
// either every row of the call is committed or none are.
type PantryRepository interface {
	GetInventory(ctx context.Context, userID string) ([]models.PantryItem, error)
	GetShopping(ctx context.Context, userID string) ([]models.PantryItem, error)

	// ReplaceInventory and ReplaceShopping implement the full-overwrite
	// "set" semantics: all existing rows of the user are deleted and the
	// given set is inserted, in one transaction.
	ReplaceInventory(ctx context.Context, userID string, items []models.PantryItem) error
	ReplaceShopping(ctx context.Context, userID string, items []models.PantryItem) error

	// AppendShopping inserts shortfall rows without touching existing ones.
	AppendShopping(ctx context.Context, userID string, items []models.PantryItem) error

	// FlashShopping atomically replaces the user's inventory with the merged
	// set and clears the user's shopping list.
	FlashShopping(ctx context.Context, userID string, merged []models.PantryItem) error
}
