package service

import (
	"context"
	"strings"

	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
	getAllUsersFn     func(ctx context.Context) ([]models.User, error)
	deleteAllUsersFn  func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	if m.getAllUsersFn != nil {
		return m.getAllUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) DeleteAllUsers(ctx context.Context) (int64, error) {
	if m.deleteAllUsersFn != nil {
		return m.deleteAllUsersFn(ctx)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.RecipeRepository
//
// catalog, when set, backs GetAllRecipes / FindRecipeByName / GetRecipeByID /
// SearchByPattern with an in-memory implementation so search tests exercise
// the real pattern ladders against LIKE-equivalent matching.
// ─────────────────────────────────────────────

type mockRecipeRepository struct {
	catalog []models.Recipe

	createRecipeFn    func(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	getRecipeByIDFn   func(ctx context.Context, id string) (models.Recipe, error)
	searchByPatternFn func(ctx context.Context, field store.SearchField, pattern string) ([]models.Recipe, error)
	getAllRecipesFn   func(ctx context.Context) ([]models.Recipe, error)
}

func (m *mockRecipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	if m.createRecipeFn != nil {
		return m.createRecipeFn(ctx, recipe)
	}
	m.catalog = append(m.catalog, recipe)
	return recipe, nil
}

func (m *mockRecipeRepository) GetRecipeByID(ctx context.Context, id string) (models.Recipe, error) {
	if m.getRecipeByIDFn != nil {
		return m.getRecipeByIDFn(ctx, id)
	}
	for _, recipe := range m.catalog {
		if recipe.ID == id {
			return recipe, nil
		}
	}
	return models.Recipe{}, store.ErrRecipeNotFound
}

func (m *mockRecipeRepository) FindRecipeByName(ctx context.Context, name string) (models.Recipe, error) {
	for _, recipe := range m.catalog {
		if recipe.Name == name {
			return recipe, nil
		}
	}
	return models.Recipe{}, store.ErrRecipeNotFound
}

func (m *mockRecipeRepository) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	if m.getAllRecipesFn != nil {
		return m.getAllRecipesFn(ctx)
	}
	return m.catalog, nil
}

func (m *mockRecipeRepository) SearchByPattern(ctx context.Context, field store.SearchField, pattern string) ([]models.Recipe, error) {
	if m.searchByPatternFn != nil {
		return m.searchByPatternFn(ctx, field, pattern)
	}

	var found []models.Recipe
	for _, recipe := range m.catalog {
		var value string
		switch field {
		case store.SearchFieldName:
			value = recipe.Name
		case store.SearchFieldIngredients:
			value = recipe.Ingredients
		case store.SearchFieldTags:
			value = recipe.Tags
		}
		if likeMatch(pattern, value) {
			found = append(found, recipe)
		}
	}
	return found, nil
}

// likeMatch evaluates a SQL LIKE pattern ('%' wildcard only, case-sensitive)
// against value.
func likeMatch(pattern, value string) bool {
	parts := strings.Split(pattern, "%")
	if len(parts) == 1 {
		return pattern == value
	}

	if !strings.HasPrefix(value, parts[0]) {
		return false
	}
	value = value[len(parts[0]):]

	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(value, part)
		if idx < 0 {
			return false
		}
		value = value[idx+len(part):]
	}

	last := parts[len(parts)-1]
	return strings.HasSuffix(value, last)
}

// ─────────────────────────────────────────────
// Mock: store.InstructionRepository
// ─────────────────────────────────────────────

type mockInstructionRepository struct {
	steps []models.Instruction

	insertInstructionFn func(ctx context.Context, instruction models.Instruction) error
	getByRecipeIDFn     func(ctx context.Context, recipeID string) ([]models.Instruction, error)
}

func (m *mockInstructionRepository) InsertInstruction(ctx context.Context, instruction models.Instruction) error {
	if m.insertInstructionFn != nil {
		return m.insertInstructionFn(ctx, instruction)
	}
	for _, step := range m.steps {
		if step.RecipeID == instruction.RecipeID && step.StepNum == instruction.StepNum {
			return nil
		}
	}
	m.steps = append(m.steps, instruction)
	return nil
}

func (m *mockInstructionRepository) GetInstructionsByRecipeID(ctx context.Context, recipeID string) ([]models.Instruction, error) {
	if m.getByRecipeIDFn != nil {
		return m.getByRecipeIDFn(ctx, recipeID)
	}
	var found []models.Instruction
	for _, step := range m.steps {
		if step.RecipeID == recipeID {
			found = append(found, step)
		}
	}
	if len(found) == 0 {
		return nil, store.ErrInstructionsNotFound
	}
	return found, nil
}

// ─────────────────────────────────────────────
// Mock: store.PantryRepository
//
// inventory and shopping back the repository with in-memory state so
// reconciler tests can assert on the committed end state.
// ─────────────────────────────────────────────

type mockPantryRepository struct {
	inventory []models.PantryItem
	shopping  []models.PantryItem

	getInventoryFn     func(ctx context.Context, userID string) ([]models.PantryItem, error)
	getShoppingFn      func(ctx context.Context, userID string) ([]models.PantryItem, error)
	replaceInventoryFn func(ctx context.Context, userID string, items []models.PantryItem) error
	replaceShoppingFn  func(ctx context.Context, userID string, items []models.PantryItem) error
	appendShoppingFn   func(ctx context.Context, userID string, items []models.PantryItem) error
	flashShoppingFn    func(ctx context.Context, userID string, merged []models.PantryItem) error
}

func ownedBy(items []models.PantryItem, userID string) []models.PantryItem {
	var owned []models.PantryItem
	for _, item := range items {
		if item.UserID == userID {
			owned = append(owned, item)
		}
	}
	return owned
}

func withoutOwner(items []models.PantryItem, userID string) []models.PantryItem {
	var kept []models.PantryItem
	for _, item := range items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	return kept
}

func (m *mockPantryRepository) GetInventory(ctx context.Context, userID string) ([]models.PantryItem, error) {
	if m.getInventoryFn != nil {
		return m.getInventoryFn(ctx, userID)
	}
	return ownedBy(m.inventory, userID), nil
}

func (m *mockPantryRepository) GetShopping(ctx context.Context, userID string) ([]models.PantryItem, error) {
	if m.getShoppingFn != nil {
		return m.getShoppingFn(ctx, userID)
	}
	return ownedBy(m.shopping, userID), nil
}

func (m *mockPantryRepository) ReplaceInventory(ctx context.Context, userID string, items []models.PantryItem) error {
	if m.replaceInventoryFn != nil {
		return m.replaceInventoryFn(ctx, userID, items)
	}
	m.inventory = append(withoutOwner(m.inventory, userID), items...)
	return nil
}

func (m *mockPantryRepository) ReplaceShopping(ctx context.Context, userID string, items []models.PantryItem) error {
	if m.replaceShoppingFn != nil {
		return m.replaceShoppingFn(ctx, userID, items)
	}
	m.shopping = append(withoutOwner(m.shopping, userID), items...)
	return nil
}

func (m *mockPantryRepository) AppendShopping(ctx context.Context, userID string, items []models.PantryItem) error {
	if m.appendShoppingFn != nil {
		return m.appendShoppingFn(ctx, userID, items)
	}
	m.shopping = append(m.shopping, items...)
	return nil
}

func (m *mockPantryRepository) FlashShopping(ctx context.Context, userID string, merged []models.PantryItem) error {
	if m.flashShoppingFn != nil {
		return m.flashShoppingFn(ctx, userID, merged)
	}
	m.inventory = append(withoutOwner(m.inventory, userID), merged...)
	m.shopping = withoutOwner(m.shopping, userID)
	return nil
}

// ─────────────────────────────────────────────
// Mock: RecipeProvider / WelcomeMailer / DetailCache
// ─────────────────────────────────────────────

type mockRecipeProvider struct {
	fetchFn func(ctx context.Context, number int) ([]models.ProviderRecipe, error)
}

func (m *mockRecipeProvider) FetchRandomRecipes(ctx context.Context, number int) ([]models.ProviderRecipe, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, number)
	}
	return nil, nil
}

type mockMailer struct {
	sendWelcomeFn func(ctx context.Context, user models.User, plainPassword string) error
	sent          int
}

func (m *mockMailer) SendWelcome(ctx context.Context, user models.User, plainPassword string) error {
	m.sent++
	if m.sendWelcomeFn != nil {
		return m.sendWelcomeFn(ctx, user, plainPassword)
	}
	return nil
}

type nopDetailCache struct{}

func (nopDetailCache) GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, bool) {
	return models.RecipeDetail{}, false
}
func (nopDetailCache) SetRecipeDetail(ctx context.Context, recipeID string, detail models.RecipeDetail) {
}
func (nopDetailCache) InvalidateRecipeDetail(ctx context.Context, recipeID string) {}
