package service

import (
	"context"
	"fmt"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/models"
)

// pantryService is the concrete implementation of PantryService: the
// reconciler between a recipe's required ingredients, a user's inventory and
// the shopping list.
//
// Every mutating operation computes its complete final state in memory first
// and hands the store one transactional write, so a failure at any point
// commits nothing.
type pantryService struct {
	recipeRepository store.RecipeRepository
	pantryRepository store.PantryRepository
	logger           *logger.Logger
}

// NewPantryService constructs a PantryService over the given repositories.
func NewPantryService(recipeRepository store.RecipeRepository, pantryRepository store.PantryRepository, logger *logger.Logger) PantryService {
	return &pantryService{
		recipeRepository: recipeRepository,
		pantryRepository: pantryRepository,
		logger:           logger,
	}
}

// GetInventory returns the user's inventory in document form.
func (s *pantryService) GetInventory(ctx context.Context, userID string) (models.PantryDoc, error) {
	items, err := s.pantryRepository.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("inventory load failed: %w", err)
	}

	return models.ToDoc(items), nil
}

// ReplaceInventory overwrites the user's inventory with the given document
// and returns the stored snapshot. This is a "set" operation, not a merge.
func (s *pantryService) ReplaceInventory(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error) {
	if err := s.pantryRepository.ReplaceInventory(ctx, userID, models.FromDoc(userID, doc)); err != nil {
		return nil, fmt.Errorf("inventory replace failed: %w", err)
	}

	return s.GetInventory(ctx, userID)
}

// GetShopping returns the user's shopping list in document form.
func (s *pantryService) GetShopping(ctx context.Context, userID string) (models.PantryDoc, error) {
	items, err := s.pantryRepository.GetShopping(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("shopping list load failed: %w", err)
	}

	return models.ToDoc(items), nil
}

// ReplaceShopping overwrites the user's shopping list with the given
// document and returns the stored snapshot.
func (s *pantryService) ReplaceShopping(ctx context.Context, userID string, doc models.PantryDoc) (models.PantryDoc, error) {
	if err := s.pantryRepository.ReplaceShopping(ctx, userID, models.FromDoc(userID, doc)); err != nil {
		return nil, fmt.Errorf("shopping list replace failed: %w", err)
	}

	return s.GetShopping(ctx, userID)
}

// CheckAndDeduct reconciles the recipe's required ingredients against the
// user's inventory.
//
// For each required ingredient:
//   - absent from inventory → shortfall for the full required amount;
//   - present with a different unit string (exact, case-sensitive
//     comparison) → the whole call fails with ErrUnitMismatch, nothing is
//     committed;
//   - present with sufficient quantity → deducted in the working set;
//   - present but short → shortfall for the deficit, carrying the required
//     unit.
//
// Any shortfall commits only the new shopping-list rows and reports
// CheckResultQueued. Otherwise the deducted working set replaces the
// inventory in one transaction, dropping rows whose quantity reached exactly
// zero, and CheckResultUpdated is reported.
func (s *pantryService) CheckAndDeduct(ctx context.Context, recipeID, userID string) (CheckResult, error) {
	log := logger.FromContext(ctx)

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return 0, fmt.Errorf("recipe lookup failed: %w", err)
	}

	required, err := models.ParseIngredientJSON(recipe.Ingredients)
	if err != nil {
		log.Err(err).Str("recipeID", recipeID).Msg("recipe has malformed ingredients blob")
		return 0, fmt.Errorf("%w: %w", ErrMalformedIngredients, err)
	}

	items, err := s.pantryRepository.GetInventory(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("inventory load failed: %w", err)
	}

	inventory := models.ToDoc(items)

	var shortfalls []models.PantryItem
	working := make(models.PantryDoc, len(inventory))
	for name, amount := range inventory {
		working[name] = amount
	}

	for name, need := range required {
		have, exists := inventory[name]
		if !exists {
			shortfalls = append(shortfalls, models.PantryItem{
				UserID:         userID,
				IngredientName: name,
				Qty:            need.Qty,
				Unit:           need.Unit,
			})
			continue
		}

		if !need.SameUnit(have) {
			log.Error().
				Str("recipeID", recipeID).
				Str("ingredient", name).
				Str("requiredUnit", need.Unit).
				Str("storedUnit", have.Unit).
				Msg("unit mismatch while checking ingredient requirements")
			return 0, ErrUnitMismatch
		}

		if have.Qty-need.Qty >= 0 {
			working[name] = models.Amount{Qty: have.Qty - need.Qty, Unit: have.Unit}
			continue
		}

		shortfalls = append(shortfalls, models.PantryItem{
			UserID:         userID,
			IngredientName: name,
			Qty:            need.Qty - have.Qty,
			Unit:           need.Unit,
		})
	}

	if len(shortfalls) > 0 {
		if err := s.pantryRepository.AppendShopping(ctx, userID, shortfalls); err != nil {
			return 0, fmt.Errorf("shopping list append failed: %w", err)
		}
		return CheckResultQueued, nil
	}

	deducted := make([]models.PantryItem, 0, len(working))
	for name, amount := range working {
		if amount.Qty == 0 {
			continue
		}
		deducted = append(deducted, models.PantryItem{
			UserID:         userID,
			IngredientName: name,
			Qty:            amount.Qty,
			Unit:           amount.Unit,
		})
	}

	if err := s.pantryRepository.ReplaceInventory(ctx, userID, deducted); err != nil {
		return 0, fmt.Errorf("inventory deduction failed: %w", err)
	}

	return CheckResultUpdated, nil
}

// Flash merges every shopping-list row into the inventory: new ingredients
// are inserted verbatim, existing ones require an exact unit match (the
// whole call fails on the first mismatch, committing nothing) and have their
// quantities added. On success the shopping list is cleared in the same
// transaction and the resulting inventory snapshot is returned.
func (s *pantryService) Flash(ctx context.Context, userID string) (models.PantryDoc, error) {
	log := logger.FromContext(ctx)

	shopping, err := s.pantryRepository.GetShopping(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("shopping list load failed: %w", err)
	}

	items, err := s.pantryRepository.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("inventory load failed: %w", err)
	}

	merged := models.ToDoc(items)

	for _, entry := range shopping {
		have, exists := merged[entry.IngredientName]
		if !exists {
			merged[entry.IngredientName] = entry.Amount()
			continue
		}

		if have.Unit != entry.Unit {
			log.Error().
				Str("ingredient", entry.IngredientName).
				Str("shoppingUnit", entry.Unit).
				Str("inventoryUnit", have.Unit).
				Msg("unit mismatch while flashing to inventory")
			return nil, ErrUnitMismatch
		}

		merged[entry.IngredientName] = models.Amount{Qty: have.Qty + entry.Qty, Unit: have.Unit}
	}

	if err := s.pantryRepository.FlashShopping(ctx, userID, models.FromDoc(userID, merged)); err != nil {
		return nil, fmt.Errorf("shopping flash failed: %w", err)
	}

	return merged, nil
}
