package store

import (
	"context"
	"fmt"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/models"
)

// instructionRepository is the SQL-backed implementation of
// [InstructionRepository], persisting per-recipe cooking steps.
type instructionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewInstructionRepository constructs an [InstructionRepository] backed by
// the provided database connection and logger.
func NewInstructionRepository(db *DB, logger *logger.Logger) InstructionRepository {
	logger.Debug().Msg("creating instruction repository")
	return &instructionRepository{
		db:     db,
		logger: logger,
	}
}

// InsertInstruction stores one cooking step. A duplicate (recipe_id, step_num)
// pair is silently ignored by ON CONFLICT DO NOTHING — first write wins.
func (r *instructionRepository) InsertInstruction(ctx context.Context, instruction models.Instruction) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, insertInstruction,
		instruction.RecipeID, instruction.StepNum, instruction.StepInstruction,
		instruction.Ingredients, instruction.Equipment,
	)
	if err != nil {
		log.Err(err).Str("func", "*instructionRepository.InsertInstruction").Msg("error executing insert")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetInstructionsByRecipeID returns all stored steps of the given recipe.
// Steps come back in storage order; callers sort by step number before
// presentation. Returns [ErrInstructionsNotFound] when the recipe has no steps.
func (r *instructionRepository) GetInstructionsByRecipeID(ctx context.Context, recipeID string) ([]models.Instruction, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getInstructionsByRecipeID, recipeID)
	if err != nil {
		log.Err(err).Str("func", "*instructionRepository.GetInstructionsByRecipeID").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var instructions []models.Instruction
	for rows.Next() {
		var step models.Instruction
		if err := rows.Scan(&step.RecipeID, &step.StepNum, &step.StepInstruction, &step.Ingredients, &step.Equipment); err != nil {
			log.Err(err).Str("func", "*instructionRepository.GetInstructionsByRecipeID").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		instructions = append(instructions, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(instructions) == 0 {
		return nil, ErrInstructionsNotFound
	}

	return instructions, nil
}
