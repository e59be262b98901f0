package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/internal/utils"
	"github.com/plateup/plateup-server/models"
)

// Provider step images arrive as bare file names; presentation URLs are
// built against the provider's CDN.
const (
	ingredientImageCDN = "https://spoonacular.com/cdn/ingredients_250x250/"
	equipmentImageCDN  = "https://spoonacular.com/cdn/equipment_250x250/"
)

// When the provider omits the ready time, one hour is assumed.
const defaultReadyMinutes = 60

// importService is the concrete implementation of ImportService. It pulls
// batches of random recipes from the external provider and folds them into
// the catalog, skipping titles already present so re-imports are idempotent.
type importService struct {
	recipeRepository      store.RecipeRepository
	instructionRepository store.InstructionRepository
	provider              RecipeProvider

	batchSize     int
	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
}

// NewImportService constructs an ImportService fetching cfg.BatchSize
// recipes per run from the given provider.
func NewImportService(recipeRepository store.RecipeRepository, instructionRepository store.InstructionRepository, provider RecipeProvider, cfg config.Provider, logger *logger.Logger) ImportService {
	return &importService{
		recipeRepository:      recipeRepository,
		instructionRepository: instructionRepository,
		provider:              provider,
		batchSize:             cfg.BatchSize,
		uuidGenerator:         utils.NewUUIDGenerator(),
		logger:                logger,
	}
}

// ImportRecipes fetches one batch from the provider and imports every recipe
// whose exact title is not yet in the catalog. A malformed or failing recipe
// is logged and skipped; it never aborts the rest of the batch. Returns the
// number of recipes actually imported.
func (s *importService) ImportRecipes(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).With().Str("func", "*importService.ImportRecipes").Logger()

	recipes, err := s.provider.FetchRandomRecipes(ctx, s.batchSize)
	if err != nil {
		log.Err(err).Msg("provider fetch failed")
		return 0, fmt.Errorf("provider fetch failed: %w", err)
	}

	imported := 0
	for _, raw := range recipes {
		stored, err := s.importOne(ctx, raw)
		if err != nil {
			log.Warn().Err(err).Str("title", raw.Title).Msg("recipe not imported, skipping")
			continue
		}
		if stored {
			imported++
		}
	}

	log.Info().Int("fetched", len(recipes)).Int("imported", imported).Msg("import run finished")

	return imported, nil
}

// importOne transforms and stores a single provider recipe. It reports false
// without error when the title already exists in the catalog.
func (s *importService) importOne(ctx context.Context, raw models.ProviderRecipe) (bool, error) {
	if raw.Title == "" {
		return false, errors.New("recipe has no title")
	}

	_, err := s.recipeRepository.FindRecipeByName(ctx, raw.Title)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrRecipeNotFound) {
		return false, fmt.Errorf("catalog lookup failed: %w", err)
	}

	recipe, err := s.transformRecipe(raw)
	if err != nil {
		return false, err
	}

	steps, err := transformSteps(recipe.ID, raw)
	if err != nil {
		return false, err
	}

	if _, err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return false, fmt.Errorf("recipe insert failed: %w", err)
	}

	for _, step := range steps {
		if err := s.instructionRepository.InsertInstruction(ctx, step); err != nil {
			return false, fmt.Errorf("instruction insert failed: %w", err)
		}
	}

	return true, nil
}

// transformRecipe maps the raw provider document onto a catalog row:
// ingredients become the serialized {"name": "qty unit"} blob, the ready
// time lands in the minute slot and is normalized into hours, and the
// dietary flags fold into the tag string.
func (s *importService) transformRecipe(raw models.ProviderRecipe) (models.Recipe, error) {
	if len(raw.ExtendedIngredients) == 0 {
		return models.Recipe{}, errors.New("recipe has no ingredients")
	}

	ingredients := make(models.IngredientMap, len(raw.ExtendedIngredients))
	for _, ingredient := range raw.ExtendedIngredients {
		ingredients[ingredient.Name] = models.Amount{Qty: ingredient.Amount, Unit: ingredient.Unit}
	}

	blob, err := models.EncodeIngredientJSON(ingredients)
	if err != nil {
		return models.Recipe{}, err
	}

	minutes := raw.ReadyInMinutes
	if minutes == 0 {
		minutes = defaultReadyMinutes
	}

	recipe := models.Recipe{
		ID:              s.uuidGenerator.Generate(),
		Name:            raw.Title,
		Ingredients:     blob,
		TimeMin:         minutes,
		Cost:            raw.PricePerServing,
		PreviewText:     raw.Summary,
		PreviewMediaURL: raw.Image,
		Tags:            buildTags(raw),
	}
	recipe.NormalizeTime()

	return recipe, nil
}

// transformSteps maps the first preparation variant's steps onto instruction
// rows, expanding step images into CDN URLs.
func transformSteps(recipeID string, raw models.ProviderRecipe) ([]models.Instruction, error) {
	if len(raw.AnalyzedInstructions) == 0 {
		return nil, errors.New("recipe has no instructions")
	}

	providerSteps := raw.AnalyzedInstructions[0].Steps
	steps := make([]models.Instruction, 0, len(providerSteps))
	for _, providerStep := range providerSteps {
		ingredients, err := encodeStepItems(providerStep.Ingredients, ingredientImageCDN)
		if err != nil {
			return nil, fmt.Errorf("step %d ingredients: %w", providerStep.Number, err)
		}
		equipment, err := encodeStepItems(providerStep.Equipment, equipmentImageCDN)
		if err != nil {
			return nil, fmt.Errorf("step %d equipment: %w", providerStep.Number, err)
		}

		steps = append(steps, models.Instruction{
			RecipeID:        recipeID,
			StepNum:         providerStep.Number,
			StepInstruction: providerStep.Step,
			Ingredients:     ingredients,
			Equipment:       equipment,
		})
	}

	return steps, nil
}

func encodeStepItems(items []models.ProviderStepItem, cdnPrefix string) (string, error) {
	stepItems := make([]models.StepItem, 0, len(items))
	for _, item := range items {
		stepItems = append(stepItems, models.StepItem{
			Name: item.Name,
			Img:  cdnPrefix + item.Image,
		})
	}

	data, err := json.Marshal(stepItems)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// buildTags folds the provider's dietary boolean flags into the comma-joined
// tag string used by the tag search field.
func buildTags(raw models.ProviderRecipe) string {
	var tags []string
	if raw.Vegetarian {
		tags = append(tags, "vegetarian")
	}
	if raw.Vegan {
		tags = append(tags, "vegan")
	}
	if raw.GlutenFree {
		tags = append(tags, "glutenFree")
	}
	if raw.VeryHealthy {
		tags = append(tags, "veryHealthy")
	}
	if raw.Cheap {
		tags = append(tags, "cheap")
	}
	if raw.VeryPopular {
		tags = append(tags, "veryPopular")
	}
	if raw.Sustainable {
		tags = append(tags, "sustainable")
	}
	return strings.Join(tags, ", ")
}
