package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/service"
	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/internal/utils"
	"github.com/plateup/plateup-server/models"
)

// searchRecipes serves the catalog search endpoint. All query parameters are
// optional; an absent parameter means "no constraint".
//
//	GET /recipe?Search=&Filter_time_h=&Filter_time_min=&Filter_cost=
//	           &Filter_has_ingredients=&Limit=&Page=&user_id=
func (h *Handler) searchRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	params, err := parseSearchParams(r)
	if err != nil {
		log.Err(err).Msg("invalid search parameters")
		http.Error(w, "invalid search parameters", http.StatusBadRequest)
		return
	}

	result, err := h.services.RecipeService.Search(ctx, params)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during recipe search")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// parseSearchParams maps the endpoint's query string onto service
// search parameters. The inventory filter is scoped to the explicit user_id
// parameter when given, otherwise to the authenticated user.
func parseSearchParams(r *http.Request) (service.SearchParams, error) {
	q := r.URL.Query()
	var params service.SearchParams

	if search := q.Get("Search"); search != "" {
		params.Query = &search
	}

	if raw := q.Get("Filter_cost"); raw != "" {
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return service.SearchParams{}, err
		}
		params.CostCeiling = &cost
	}

	if raw := q.Get("Filter_time_h"); raw != "" {
		timeH, err := strconv.Atoi(raw)
		if err != nil {
			return service.SearchParams{}, err
		}
		params.TimeHCeiling = &timeH
	}

	if raw := q.Get("Filter_time_min"); raw != "" {
		timeMin, err := strconv.Atoi(raw)
		if err != nil {
			return service.SearchParams{}, err
		}
		params.TimeMinCeiling = &timeMin
	}

	if raw := q.Get("Filter_has_ingredients"); raw != "" {
		hasIngredients, err := strconv.ParseBool(raw)
		if err != nil {
			return service.SearchParams{}, err
		}
		params.RequireInventory = hasIngredients
	}

	if raw := q.Get("Limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return service.SearchParams{}, err
		}
		params.Limit = limit
	}

	if raw := q.Get("Page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return service.SearchParams{}, err
		}
		params.Page = page
	}

	params.UserID = q.Get("user_id")
	if params.UserID == "" {
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			params.UserID = userID
		}
	}

	return params, nil
}

func (h *Handler) addRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if _, err := h.services.RecipeService.AddRecipe(ctx, recipe); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid recipe data provided")
			http.Error(w, "invalid recipe data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during recipe insertion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("recipe inserted!"))
}

func (h *Handler) recipeDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	recipeID := chi.URLParam(r, "id")

	detail, err := h.services.RecipeService.GetRecipeDetail(ctx, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecipeNotFound), errors.Is(err, store.ErrInstructionsNotFound):
			log.Err(err).Str("recipeID", recipeID).Msg("recipe detail is incomplete")
			http.Error(w, "recipe not found", http.StatusInternalServerError)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during recipe detail assembly")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, detail, http.StatusOK)
}

func (h *Handler) addInstruction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var instruction models.Instruction
	if err := json.NewDecoder(r.Body).Decode(&instruction); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	instruction.RecipeID = chi.URLParam(r, "id")

	if err := h.services.RecipeService.AddInstruction(ctx, instruction); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid instruction data provided")
			http.Error(w, "invalid instruction data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during instruction insertion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("instruction inserted!"))
}

// checkRecipe reconciles a recipe against a user's inventory: deducts the
// required amounts when everything is present, queues shortfalls onto the
// shopping list otherwise.
func (h *Handler) checkRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	recipeID := chi.URLParam(r, "recipe_id")
	userID := chi.URLParam(r, "user_id")

	result, err := h.services.PantryService.CheckAndDeduct(ctx, recipeID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnitMismatch):
			log.Err(err).Msg("ingredient unit mismatch")
			http.Error(w, "ingredient unit mismatch", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrRecipeNotFound):
			log.Err(err).Str("recipeID", recipeID).Msg("recipe was not found")
			http.Error(w, "recipe was not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during inventory check")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	switch result {
	case service.CheckResultQueued:
		_, _ = w.Write([]byte("Not enough ingredients, added to shopping list"))
	default:
		_, _ = w.Write([]byte("Inventory updated, enough ingredients to proceed!"))
	}
}
