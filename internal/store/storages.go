package store

import (
	"context"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
)

type Storages struct {
	UserRepository        UserRepository
	RecipeRepository      RecipeRepository
	InstructionRepository InstructionRepository
	PantryRepository      PantryRepository
}

// NewStorages connects to the configured database, applies pending
// migrations, and wires all repositories to the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		log.Err(err).Msg("connection to database failed")
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Msg("database migration failed")
		return nil, err
	}

	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		RecipeRepository:      NewRecipeRepository(db, log),
		InstructionRepository: NewInstructionRepository(db, log),
		PantryRepository:      NewPantryRepository(db, log),
	}, nil
}
