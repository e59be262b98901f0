package service

import (
	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/store"
)

type Services struct {
	AuthService   AuthService
	RecipeService RecipeService
	PantryService PantryService
	ImportService ImportService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, provider RecipeProvider, mailer WelcomeMailer, cache DetailCache, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg.App, mailer, logger),
		RecipeService: NewRecipeService(storages.RecipeRepository, storages.InstructionRepository, storages.PantryRepository, cache, logger),
		PantryService: NewPantryService(storages.RecipeRepository, storages.PantryRepository, logger),
		ImportService: NewImportService(storages.RecipeRepository, storages.InstructionRepository, provider, cfg.Provider, logger),
	}
}
