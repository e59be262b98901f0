package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/models"
)

// recipeRepository is the SQL-backed implementation of [RecipeRepository].
// It handles catalog reads, recipe creation and LIKE-pattern search against
// the "recipe" table.
type recipeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecipeRepository constructs a [RecipeRepository] backed by the provided
// database connection and logger.
func NewRecipeRepository(db *DB, logger *logger.Logger) RecipeRepository {
	logger.Debug().Msg("creating recipe repository")
	return &recipeRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRecipe persists a new recipe row and returns the canonical database
// representation.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createRecipe,
		recipe.ID, recipe.Name, recipe.Ingredients,
		recipe.TimeH, recipe.TimeMin, recipe.Cost,
		recipe.PreviewText, recipe.PreviewMediaURL, recipe.Tags,
	)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*recipeRepository.CreateRecipe").Msg("error: row is nil")
		return models.Recipe{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanRecipe(row, &recipe); err != nil {
		log.Err(err).Str("func", "*recipeRepository.CreateRecipe").Msg("error: scanning error")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return recipe, nil
}

// GetRecipeByID retrieves a single recipe by its id.
// Returns [ErrRecipeNotFound] when no such recipe exists.
func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	var recipe models.Recipe
	row := r.db.QueryRowContext(ctx, getRecipeByID, id)

	if err := row.Err(); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}

		log.Err(err).Str("func", "*recipeRepository.GetRecipeByID").Msg("error: row is nil")
		return models.Recipe{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanRecipe(row, &recipe); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}

		log.Err(err).Str("func", "*recipeRepository.GetRecipeByID").Msg("error: scanning error")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return recipe, nil
}

// FindRecipeByName retrieves a single recipe by its exact name.
// Returns [ErrRecipeNotFound] when no such recipe exists.
func (r *recipeRepository) FindRecipeByName(ctx context.Context, name string) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	var recipe models.Recipe
	row := r.db.QueryRowContext(ctx, findRecipeByName, name)

	if err := row.Err(); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}

		log.Err(err).Str("func", "*recipeRepository.FindRecipeByName").Msg("error: row is nil")
		return models.Recipe{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanRecipe(row, &recipe); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}

		log.Err(err).Str("func", "*recipeRepository.FindRecipeByName").Msg("error: scanning error")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return recipe, nil
}

// GetAllRecipes returns the full catalog in storage order.
func (r *recipeRepository) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllRecipes)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.GetAllRecipes").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRecipes(rows)
}

// SearchByPattern returns all recipes whose field column matches the given
// SQL LIKE pattern, in storage order. The field is restricted to the closed
// [SearchField] set, so user input never selects a column.
func (r *recipeRepository) SearchByPattern(ctx context.Context, field SearchField, pattern string) ([]models.Recipe, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Select("id", "name", "ingredients", "time_h", "time_min", "cost", "preview_text", "preview_media_url", "tags").
		From("recipe").
		Where(sq.Like{string(field): pattern}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.SearchByPattern").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.SearchByPattern").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRecipes(rows)
}

// scanner abstracts *sql.Row and *sql.Rows for shared column mapping.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner, recipe *models.Recipe) error {
	return s.Scan(
		&recipe.ID, &recipe.Name, &recipe.Ingredients,
		&recipe.TimeH, &recipe.TimeMin, &recipe.Cost,
		&recipe.PreviewText, &recipe.PreviewMediaURL, &recipe.Tags,
	)
}

func collectRecipes(rows *sql.Rows) ([]models.Recipe, error) {
	var recipes []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		if err := scanRecipe(rows, &recipe); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return recipes, nil
}
