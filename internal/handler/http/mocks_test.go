package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/service"
	"github.com/plateup/plateup-server/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn   func(ctx context.Context, user models.User) (models.User, error)
	loginFn          func(ctx context.Context, email, password string) (models.User, error)
	getAllUsersFn    func(ctx context.Context) ([]models.User, error)
	deleteAllUsersFn func(ctx context.Context) (int64, error)
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn     func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return m.getAllUsersFn(ctx)
}

func (m *mockAuthService) DeleteAllUsers(ctx context.Context) (int64, error) {
	return m.deleteAllUsersFn(ctx)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Mock RecipeService
// ─────────────────────────────────────────────

type mockRecipeService struct {
	searchFn          func(ctx context.Context, params service.SearchParams) (models.SearchResult, error)
	addRecipeFn       func(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	getRecipeDetailFn func(ctx context.Context, recipeID string) (models.RecipeDetail, error)
	addInstructionFn  func(ctx context.Context, instruction models.Instruction) error
}

func (m *mockRecipeService) Search(ctx context.Context, params service.SearchParams) (models.SearchResult, error) {
	return m.searchFn(ctx, params)
}

func (m *mockRecipeService) AddRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	return m.addRecipeFn(ctx, recipe)
}

func (m *mockRecipeService) GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, error) {
	return m.getRecipeDetailFn(ctx, recipeID)
}

func (m *mockRecipeService) AddInstruction(ctx context.Context, instruction models.Instruction) error {
	return m.addInstructionFn(ctx, instruction)
}

// ─────────────────────────────────────────────
// Mock PantryService
// ─────────────────────────────────────────────

type mockPantryService struct {
	getInventoryFn     func(ctx context.Context, userID string) (models.PantryDoc, error)
	replaceInventoryFn func(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error)
	getShoppingFn      func(ctx context.Context, userID string) (models.PantryDoc, error)
	replaceShoppingFn  func(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error)
	checkAndDeductFn   func(ctx context.Context, recipeID, userID string) (service.CheckResult, error)
	flashFn            func(ctx context.Context, userID string) (models.PantryDoc, error)
}

func (m *mockPantryService) GetInventory(ctx context.Context, userID string) (models.PantryDoc, error) {
	return m.getInventoryFn(ctx, userID)
}

func (m *mockPantryService) ReplaceInventory(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error) {
	return m.replaceInventoryFn(ctx, userID, doc)
}

func (m *mockPantryService) GetShopping(ctx context.Context, userID string) (models.PantryDoc, error) {
	return m.getShoppingFn(ctx, userID)
}

func (m *mockPantryService) ReplaceShopping(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error) {
	return m.replaceShoppingFn(ctx, userID, doc)
}

func (m *mockPantryService) CheckAndDeduct(ctx context.Context, recipeID, userID string) (service.CheckResult, error) {
	return m.checkAndDeductFn(ctx, recipeID, userID)
}

func (m *mockPantryService) Flash(ctx context.Context, userID string) (models.PantryDoc, error) {
	return m.flashFn(ctx, userID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks. Nil mocks
// are left nil; tests must only exercise the services they stub.
func newTestHandler(t *testing.T, auth service.AuthService, recipes service.RecipeService, pantry service.PantryService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService:   auth,
		RecipeService: recipes,
		PantryService: pantry,
	}
	return NewHandler(svcs, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}
