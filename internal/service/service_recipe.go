package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/internal/utils"
	"github.com/plateup/plateup-server/models"
)

const defaultSearchLimit = 20

// recipeService is the concrete implementation of RecipeService. It owns the
// catalog search pipeline (pattern matching, filtering, random fallback,
// pagination) and the recipe/instruction write paths.
type recipeService struct {
	recipeRepository      store.RecipeRepository
	instructionRepository store.InstructionRepository
	pantryRepository      store.PantryRepository

	// cache fronts the recipe detail lookup; always non-nil (a no-op
	// implementation is injected when caching is disabled).
	cache DetailCache

	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
}

// NewRecipeService constructs a RecipeService over the given repositories.
// The pantry repository is only consulted by the inventory-sufficiency
// search filter.
func NewRecipeService(recipeRepository store.RecipeRepository, instructionRepository store.InstructionRepository, pantryRepository store.PantryRepository, cache DetailCache, logger *logger.Logger) RecipeService {
	return &recipeService{
		recipeRepository:      recipeRepository,
		instructionRepository: instructionRepository,
		pantryRepository:      pantryRepository,
		cache:                 cache,
		uuidGenerator:         utils.NewUUIDGenerator(),
		logger:                logger,
	}
}

// Search runs the catalog search pipeline:
//
//  1. The query, when present, is expanded into wildcard pattern ladders per
//     field (name, ingredients blob, tags), original case before lowercase.
//     Matches are unioned without duplicates preserving first-seen order, so
//     higher-precision patterns rank their matches first; the union order is
//     the de facto relevance ranking.
//  2. Filters apply in fixed order: cost ceiling, cooking-time ceiling pair
//     (same-hour matches sorted before lower-hour ones), then the
//     inventory-sufficiency filter.
//  3. When no query was given, or the filtered matches come up empty, the
//     whole catalog is re-filtered and a uniform random sample of size
//     min(limit, pool) is drawn with IsRandom set and the page forced to 0.
//  4. Pagination slices [page*limit, page*limit+limit) last; an out-of-range
//     page yields an empty list, not an error.
func (s *recipeService) Search(ctx context.Context, params SearchParams) (models.SearchResult, error) {
	log := logger.FromContext(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	page := params.Page
	if page < 0 {
		page = 0
	}

	var matches []models.Recipe
	hasQuery := params.Query != nil && *params.Query != ""
	if hasQuery {
		candidates, err := s.searchCandidates(ctx, *params.Query)
		if err != nil {
			return models.SearchResult{}, err
		}
		matches, err = s.applyFilters(ctx, candidates, params)
		if err != nil {
			return models.SearchResult{}, err
		}
	}

	if hasQuery && len(matches) > 0 {
		return models.SearchResult{Recipes: paginate(matches, limit, page)}, nil
	}

	// Random fallback: no text constraint, or nothing survived it. The whole
	// catalog becomes the pool, the same filters run again, and a uniform
	// sample is drawn.
	catalog, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		log.Err(err).Str("func", "*recipeService.Search").Msg("error loading catalog for fallback")
		return models.SearchResult{}, fmt.Errorf("error loading catalog: %w", err)
	}

	pool, err := s.applyFilters(ctx, catalog, params)
	if err != nil {
		return models.SearchResult{}, err
	}

	sample := randomSample(pool, limit)

	return models.SearchResult{
		Recipes:  paginate(sample, limit, 0),
		IsRandom: true,
	}, nil
}

// searchCandidates matches the query against name, ingredients and tags and
// unions the results in that field order, deduplicated by recipe id.
func (s *recipeService) searchCandidates(ctx context.Context, query string) ([]models.Recipe, error) {
	var merged []models.Recipe
	seen := make(map[string]struct{})

	fields := []struct {
		field    store.SearchField
		patterns []string
	}{
		{store.SearchFieldName, namePatterns(query)},
		{store.SearchFieldIngredients, ingredientPatterns(query)},
		{store.SearchFieldTags, tagPatterns(query)},
	}

	for _, f := range fields {
		for _, pattern := range f.patterns {
			found, err := s.recipeRepository.SearchByPattern(ctx, f.field, pattern)
			if err != nil {
				return nil, fmt.Errorf("error searching %s by pattern: %w", f.field, err)
			}
			merged = mergeRecipes(merged, found, seen)
		}
	}

	return merged, nil
}

// namePatterns builds the wildcard ladder for the name field, from exact
// word-boundary match down to bare substring match, original case first.
func namePatterns(keyword string) []string {
	ladder := func(k string) []string {
		return []string{
			"% " + k + " %",
			"%" + k + " %",
			"% " + k + "%",
			"%" + k + "%",
		}
	}
	return append(ladder(keyword), ladder(strings.ToLower(keyword))...)
}

// ingredientPatterns builds the wildcard ladder for the serialized
// ingredients blob. The quoted variants anchor on the JSON key delimiters,
// so a whole-key match outranks a substring hit inside another name.
func ingredientPatterns(keyword string) []string {
	ladder := func(k string) []string {
		return []string{
			`%"` + k + `"%`,
			`%"` + k + ` %`,
			`%` + k + `"%`,
			`% ` + k + ` %`,
			`%` + k + ` %`,
			`% ` + k + `%`,
			`%` + k + `%`,
		}
	}
	return append(ladder(keyword), ladder(strings.ToLower(keyword))...)
}

// tagPatterns matches the tag field against the bare keyword only, original
// case then lowercase.
func tagPatterns(keyword string) []string {
	return []string{keyword, strings.ToLower(keyword)}
}

func mergeRecipes(merged, found []models.Recipe, seen map[string]struct{}) []models.Recipe {
	for _, recipe := range found {
		if _, ok := seen[recipe.ID]; ok {
			continue
		}
		seen[recipe.ID] = struct{}{}
		merged = append(merged, recipe)
	}
	return merged
}

// applyFilters runs the optional filters in their fixed order: cost, time,
// inventory sufficiency.
func (s *recipeService) applyFilters(ctx context.Context, recipes []models.Recipe, params SearchParams) ([]models.Recipe, error) {
	if params.CostCeiling != nil {
		recipes = filterByCost(recipes, *params.CostCeiling)
	}
	if params.TimeHCeiling != nil && params.TimeMinCeiling != nil {
		recipes = filterByTime(recipes, *params.TimeHCeiling, *params.TimeMinCeiling)
	}
	if params.RequireInventory {
		filtered, err := s.filterByInventory(ctx, recipes, params.UserID)
		if err != nil {
			return nil, err
		}
		recipes = filtered
	}
	return recipes, nil
}

func filterByCost(recipes []models.Recipe, ceiling float64) []models.Recipe {
	var kept []models.Recipe
	for _, recipe := range recipes {
		if recipe.Cost <= ceiling {
			kept = append(kept, recipe)
		}
	}
	return kept
}

// filterByTime keeps recipes under the (hour, minute) ceiling pair. Recipes
// matching the ceiling hour exactly (with minutes within bound) sort before
// strictly faster ones.
func filterByTime(recipes []models.Recipe, hourCeiling, minuteCeiling int) []models.Recipe {
	var sameHour, belowHour []models.Recipe
	for _, recipe := range recipes {
		switch {
		case recipe.TimeH == hourCeiling && recipe.TimeMin <= minuteCeiling:
			sameHour = append(sameHour, recipe)
		case recipe.TimeH < hourCeiling:
			belowHour = append(belowHour, recipe)
		}
	}
	return append(sameHour, belowHour...)
}

// filterByInventory keeps recipes every required ingredient of which exists
// in the user's inventory with a positive quantity. Units are not checked at
// this stage; that is the reconciler's job.
func (s *recipeService) filterByInventory(ctx context.Context, recipes []models.Recipe, userID string) ([]models.Recipe, error) {
	log := logger.FromContext(ctx)

	items, err := s.pantryRepository.GetInventory(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*recipeService.filterByInventory").Str("userID", userID).Msg("error loading inventory")
		return nil, fmt.Errorf("error loading inventory: %w", err)
	}

	available := make(map[string]float64, len(items))
	for _, item := range items {
		available[item.IngredientName] = item.Qty
	}

	var kept []models.Recipe
	for _, recipe := range recipes {
		required, err := models.ParseIngredientJSON(recipe.Ingredients)
		if err != nil {
			log.Warn().Err(err).Str("recipeID", recipe.ID).Msg("skipping recipe with malformed ingredients blob")
			continue
		}

		cookable := true
		for name := range required {
			if available[name] <= 0 {
				cookable = false
				break
			}
		}
		if cookable {
			kept = append(kept, recipe)
		}
	}

	return kept, nil
}

func randomSample(pool []models.Recipe, limit int) []models.Recipe {
	k := min(limit, len(pool))
	sample := make([]models.Recipe, 0, k)
	for _, i := range rand.Perm(len(pool))[:k] {
		sample = append(sample, pool[i])
	}
	return sample
}

func paginate(recipes []models.Recipe, limit, page int) []models.Recipe {
	start := page * limit
	if start >= len(recipes) {
		return []models.Recipe{}
	}
	end := min(start+limit, len(recipes))
	return recipes[start:end]
}

// AddRecipe validates and persists a manually submitted recipe, assigning an
// id and normalizing the cooking time before the write.
func (s *recipeService) AddRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	if recipe.Name == "" || recipe.Cost < 0 {
		log.Error().Str("name", recipe.Name).Float64("cost", recipe.Cost).Msg("invalid recipe data provided")
		return models.Recipe{}, ErrInvalidDataProvided
	}

	if recipe.ID == "" {
		recipe.ID = s.uuidGenerator.Generate()
	}
	recipe.NormalizeTime()

	created, err := s.recipeRepository.CreateRecipe(ctx, recipe)
	if err != nil {
		log.Err(err).Str("name", recipe.Name).Msg("recipe creation ended with error")
		return models.Recipe{}, fmt.Errorf("recipe creation ended with error: %w", err)
	}

	return created, nil
}

// GetRecipeDetail returns the recipe preview together with its instruction
// steps sorted ascending by step number. The assembled detail is served from
// the cache when possible.
//
// Returns store.ErrRecipeNotFound / store.ErrInstructionsNotFound when
// either half is missing.
func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, error) {
	log := logger.FromContext(ctx)

	if detail, ok := s.cache.GetRecipeDetail(ctx, recipeID); ok {
		return detail, nil
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return models.RecipeDetail{}, fmt.Errorf("recipe lookup failed: %w", err)
	}

	instructions, err := s.instructionRepository.GetInstructionsByRecipeID(ctx, recipeID)
	if err != nil {
		return models.RecipeDetail{}, fmt.Errorf("instruction lookup failed: %w", err)
	}

	sort.Slice(instructions, func(i, j int) bool {
		return instructions[i].StepNum < instructions[j].StepNum
	})

	views := make([]models.InstructionView, 0, len(instructions))
	for _, instruction := range instructions {
		view, err := instructionView(instruction)
		if err != nil {
			log.Err(err).Str("recipeID", recipeID).Int("stepNum", instruction.StepNum).Msg("error decoding instruction step")
			return models.RecipeDetail{}, fmt.Errorf("error decoding instruction step: %w", err)
		}
		views = append(views, view)
	}

	detail := models.RecipeDetail{
		RecipePreview:     recipe,
		RecipeInstruction: views,
	}
	s.cache.SetRecipeDetail(ctx, recipeID, detail)

	return detail, nil
}

func instructionView(instruction models.Instruction) (models.InstructionView, error) {
	var ingredients, equipment []models.StepItem
	if err := json.Unmarshal([]byte(instruction.Ingredients), &ingredients); err != nil {
		return models.InstructionView{}, fmt.Errorf("step ingredients: %w", err)
	}
	if err := json.Unmarshal([]byte(instruction.Equipment), &equipment); err != nil {
		return models.InstructionView{}, fmt.Errorf("step equipment: %w", err)
	}

	return models.InstructionView{
		StepInstruction: instruction.StepInstruction,
		Ingredients:     ingredients,
		Equipment:       equipment,
	}, nil
}

// AddInstruction stores one cooking step. A duplicate (recipe_id, step_num)
// pair is silently ignored; the cached detail for the recipe is invalidated
// either way.
func (s *recipeService) AddInstruction(ctx context.Context, instruction models.Instruction) error {
	log := logger.FromContext(ctx)

	if instruction.RecipeID == "" {
		log.Error().Msg("invalid instruction data provided: empty recipe id")
		return ErrInvalidDataProvided
	}
	if instruction.Ingredients == "" {
		instruction.Ingredients = "[]"
	}
	if instruction.Equipment == "" {
		instruction.Equipment = "[]"
	}

	if err := s.instructionRepository.InsertInstruction(ctx, instruction); err != nil {
		log.Err(err).Str("recipeID", instruction.RecipeID).Int("stepNum", instruction.StepNum).Msg("instruction insert ended with error")
		return fmt.Errorf("instruction insert ended with error: %w", err)
	}

	s.cache.InvalidateRecipeDetail(ctx, instruction.RecipeID)

	return nil
}
