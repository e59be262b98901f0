package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateup/plateup-server/internal/service"
	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/models"
)

// withURLParams injects chi route parameters into the request context so a
// handler can be called directly, without going through the router.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// ─────────────────────────────────────────────
// searchRecipes — query parameter mapping
// ─────────────────────────────────────────────

func TestSearchRecipes_MapsQueryParameters(t *testing.T) {
	var captured service.SearchParams
	recipes := &mockRecipeService{
		searchFn: func(_ context.Context, params service.SearchParams) (models.SearchResult, error) {
			captured = params
			return models.SearchResult{Recipes: []models.Recipe{{ID: "r-1"}}}, nil
		},
	}

	h := newTestHandler(t, nil, recipes, nil)
	target := "/recipe?Search=soup&Filter_cost=12.5&Filter_time_h=1&Filter_time_min=30" +
		"&Filter_has_ingredients=true&Limit=5&Page=2&user_id=u-1"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	h.searchRecipes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, captured.Query)
	assert.Equal(t, "soup", *captured.Query)
	require.NotNil(t, captured.CostCeiling)
	assert.Equal(t, 12.5, *captured.CostCeiling)
	require.NotNil(t, captured.TimeHCeiling)
	assert.Equal(t, 1, *captured.TimeHCeiling)
	require.NotNil(t, captured.TimeMinCeiling)
	assert.Equal(t, 30, *captured.TimeMinCeiling)
	assert.True(t, captured.RequireInventory)
	assert.Equal(t, 5, captured.Limit)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, "u-1", captured.UserID)
}

func TestSearchRecipes_AbsentParamsMeanNoConstraint(t *testing.T) {
	var captured service.SearchParams
	recipes := &mockRecipeService{
		searchFn: func(_ context.Context, params service.SearchParams) (models.SearchResult, error) {
			captured = params
			return models.SearchResult{}, nil
		},
	}

	h := newTestHandler(t, nil, recipes, nil)
	req := httptest.NewRequest(http.MethodGet, "/recipe", nil)
	rec := httptest.NewRecorder()

	h.searchRecipes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured.Query)
	assert.Nil(t, captured.CostCeiling)
	assert.Nil(t, captured.TimeHCeiling)
	assert.Nil(t, captured.TimeMinCeiling)
	assert.False(t, captured.RequireInventory)
	assert.Zero(t, captured.Limit)
	assert.Zero(t, captured.Page)
}

func TestSearchRecipes_InvalidNumberIsRejected(t *testing.T) {
	h := newTestHandler(t, nil, &mockRecipeService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/recipe?Filter_cost=cheap", nil)
	rec := httptest.NewRecorder()

	h.searchRecipes(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// addRecipe
// ─────────────────────────────────────────────

func TestAddRecipe_Success(t *testing.T) {
	recipes := &mockRecipeService{
		addRecipeFn: func(_ context.Context, recipe models.Recipe) (models.Recipe, error) {
			require.Equal(t, "Pancakes", recipe.Name)
			return recipe, nil
		},
	}

	h := newTestHandler(t, nil, recipes, nil)
	body := jsonBody(t, models.Recipe{Name: "Pancakes", Cost: 4.5})
	req := httptest.NewRequest(http.MethodPost, "/recipe", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.addRecipe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "recipe inserted!", rec.Body.String())
}

func TestAddRecipe_InvalidData(t *testing.T) {
	recipes := &mockRecipeService{
		addRecipeFn: func(_ context.Context, _ models.Recipe) (models.Recipe, error) {
			return models.Recipe{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, nil, recipes, nil)
	body := jsonBody(t, models.Recipe{Cost: -1})
	req := httptest.NewRequest(http.MethodPost, "/recipe", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.addRecipe(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// recipeDetail
// ─────────────────────────────────────────────

func TestRecipeDetail_Success(t *testing.T) {
	recipes := &mockRecipeService{
		getRecipeDetailFn: func(_ context.Context, recipeID string) (models.RecipeDetail, error) {
			require.Equal(t, "r-1", recipeID)
			return models.RecipeDetail{
				RecipePreview: models.Recipe{ID: "r-1", Name: "Pancakes"},
				RecipeInstruction: []models.InstructionView{
					{StepInstruction: "Mix the batter."},
				},
			}, nil
		},
	}

	h := newTestHandler(t, nil, recipes, nil)
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/recipe/r-1", nil), map[string]string{"id": "r-1"})
	rec := httptest.NewRecorder()

	h.recipeDetail(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.RecipeDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Pancakes", got.RecipePreview.Name)
	require.Len(t, got.RecipeInstruction, 1)
}

func TestRecipeDetail_Missing(t *testing.T) {
	for name, sentinel := range map[string]error{
		"no preview":      store.ErrRecipeNotFound,
		"no instructions": store.ErrInstructionsNotFound,
	} {
		t.Run(name, func(t *testing.T) {
			recipes := &mockRecipeService{
				getRecipeDetailFn: func(_ context.Context, _ string) (models.RecipeDetail, error) {
					return models.RecipeDetail{}, sentinel
				},
			}

			h := newTestHandler(t, nil, recipes, nil)
			req := withURLParams(httptest.NewRequest(http.MethodGet, "/recipe/r-404", nil), map[string]string{"id": "r-404"})
			rec := httptest.NewRecorder()

			h.recipeDetail(rec, req)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// addInstruction
// ─────────────────────────────────────────────

func TestAddInstruction_UsesRecipeIDFromPath(t *testing.T) {
	recipes := &mockRecipeService{
		addInstructionFn: func(_ context.Context, instruction models.Instruction) error {
			require.Equal(t, "r-1", instruction.RecipeID)
			require.Equal(t, 2, instruction.StepNum)
			return nil
		},
	}

	h := newTestHandler(t, nil, recipes, nil)
	body := jsonBody(t, models.Instruction{StepNum: 2, StepInstruction: "Flip."})
	req := withURLParams(httptest.NewRequest(http.MethodPost, "/recipe/r-1", strings.NewReader(body)), map[string]string{"id": "r-1"})
	rec := httptest.NewRecorder()

	h.addInstruction(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "instruction inserted!", rec.Body.String())
}

// ─────────────────────────────────────────────
// checkRecipe
// ─────────────────────────────────────────────

func TestCheckRecipe_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		result     service.CheckResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "inventory deducted",
			result:     service.CheckResultUpdated,
			wantStatus: http.StatusOK,
			wantBody:   "Inventory updated, enough ingredients to proceed!",
		},
		{
			name:       "shortfalls queued",
			result:     service.CheckResultQueued,
			wantStatus: http.StatusOK,
			wantBody:   "Not enough ingredients, added to shopping list",
		},
		{
			name:       "unit mismatch",
			err:        service.ErrUnitMismatch,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown recipe",
			err:        store.ErrRecipeNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pantry := &mockPantryService{
				checkAndDeductFn: func(_ context.Context, recipeID, userID string) (service.CheckResult, error) {
					require.Equal(t, "r-1", recipeID)
					require.Equal(t, "u-1", userID)
					return tt.result, tt.err
				},
			}

			h := newTestHandler(t, nil, nil, pantry)
			req := withURLParams(
				httptest.NewRequest(http.MethodGet, "/recipe/r-1/check/u-1", nil),
				map[string]string{"recipe_id": "r-1", "user_id": "u-1"},
			)
			rec := httptest.NewRecorder()

			h.checkRecipe(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
