package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/models"
)

func providerRecipe(title string) models.ProviderRecipe {
	return models.ProviderRecipe{
		Title:           title,
		ReadyInMinutes:  90,
		PricePerServing: 3.25,
		Summary:         "A tasty dish.",
		Image:           "https://img.example.com/dish.jpg",
		Vegetarian:      true,
		Cheap:           true,
		ExtendedIngredients: []models.ProviderIngredient{
			{Name: "beef", Amount: 2, Unit: "kg"},
			{Name: "salt", Amount: 1, Unit: ""},
		},
		AnalyzedInstructions: []models.ProviderInstruction{{
			Steps: []models.ProviderStep{
				{
					Number: 1,
					Step:   "sear the beef",
					Ingredients: []models.ProviderStepItem{
						{Name: "beef", Image: "beef.jpg"},
					},
					Equipment: []models.ProviderStepItem{
						{Name: "pan", Image: "pan.png"},
					},
				},
				{Number: 2, Step: "rest and serve"},
			},
		}},
	}
}

func newTestImportService(recipes *mockRecipeRepository, instructions *mockInstructionRepository, provider *mockRecipeProvider) ImportService {
	return NewImportService(recipes, instructions, provider, config.Provider{BatchSize: 100}, logger.Nop())
}

func TestImportRecipes_TransformsProviderPayload(t *testing.T) {
	recipes := &mockRecipeRepository{}
	instructions := &mockInstructionRepository{}
	provider := &mockRecipeProvider{
		fetchFn: func(ctx context.Context, number int) ([]models.ProviderRecipe, error) {
			assert.Equal(t, 100, number)
			return []models.ProviderRecipe{providerRecipe("Beef Wellington")}, nil
		},
	}
	svc := newTestImportService(recipes, instructions, provider)

	imported, err := svc.ImportRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	require.Len(t, recipes.catalog, 1)
	stored := recipes.catalog[0]
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "Beef Wellington", stored.Name)
	assert.Equal(t, 1, stored.TimeH, "90 provider minutes must carry into hours")
	assert.Equal(t, 30, stored.TimeMin)
	assert.InDelta(t, 3.25, stored.Cost, 1e-9)
	assert.Equal(t, "A tasty dish.", stored.PreviewText)
	assert.Equal(t, "vegetarian, cheap", stored.Tags)

	ingredients, err := models.ParseIngredientJSON(stored.Ingredients)
	require.NoError(t, err)
	assert.InDelta(t, 2, ingredients["beef"].Qty, 1e-9)
	assert.Equal(t, "kg", ingredients["beef"].Unit)
	assert.Equal(t, "", ingredients["salt"].Unit)

	require.Len(t, instructions.steps, 2)
	assert.Equal(t, stored.ID, instructions.steps[0].RecipeID)
	assert.Contains(t, instructions.steps[0].Ingredients, "https://spoonacular.com/cdn/ingredients_250x250/beef.jpg")
	assert.Contains(t, instructions.steps[0].Equipment, "https://spoonacular.com/cdn/equipment_250x250/pan.png")
}

func TestImportRecipes_ExistingTitleIsSkipped(t *testing.T) {
	recipes := &mockRecipeRepository{catalog: []models.Recipe{
		{ID: "existing", Name: "Beef Wellington"},
	}}
	provider := &mockRecipeProvider{
		fetchFn: func(ctx context.Context, number int) ([]models.ProviderRecipe, error) {
			return []models.ProviderRecipe{providerRecipe("Beef Wellington")}, nil
		},
	}
	svc := newTestImportService(recipes, &mockInstructionRepository{}, provider)

	imported, err := svc.ImportRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Len(t, recipes.catalog, 1)
}

func TestImportRecipes_MalformedRecipeDoesNotAbortBatch(t *testing.T) {
	recipes := &mockRecipeRepository{}
	provider := &mockRecipeProvider{
		fetchFn: func(ctx context.Context, number int) ([]models.ProviderRecipe, error) {
			broken := providerRecipe("Broken Dish")
			broken.AnalyzedInstructions = nil
			return []models.ProviderRecipe{
				broken,
				providerRecipe("Good Dish"),
			}, nil
		},
	}
	svc := newTestImportService(recipes, &mockInstructionRepository{}, provider)

	imported, err := svc.ImportRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	require.Len(t, recipes.catalog, 1)
	assert.Equal(t, "Good Dish", recipes.catalog[0].Name)
}

func TestImportRecipes_MissingReadyTimeDefaultsToOneHour(t *testing.T) {
	recipes := &mockRecipeRepository{}
	provider := &mockRecipeProvider{
		fetchFn: func(ctx context.Context, number int) ([]models.ProviderRecipe, error) {
			raw := providerRecipe("Quick Dish")
			raw.ReadyInMinutes = 0
			return []models.ProviderRecipe{raw}, nil
		},
	}
	svc := newTestImportService(recipes, &mockInstructionRepository{}, provider)

	_, err := svc.ImportRecipes(context.Background())
	require.NoError(t, err)

	require.Len(t, recipes.catalog, 1)
	assert.Equal(t, 1, recipes.catalog[0].TimeH)
	assert.Equal(t, 0, recipes.catalog[0].TimeMin)
}

func TestImportRecipes_ProviderFailureAbortsRun(t *testing.T) {
	provider := &mockRecipeProvider{
		fetchFn: func(ctx context.Context, number int) ([]models.ProviderRecipe, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	svc := newTestImportService(&mockRecipeRepository{}, &mockInstructionRepository{}, provider)

	_, err := svc.ImportRecipes(context.Background())
	assert.Error(t, err)
}
