package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/user", h.register)
		r.Post("/login", h.login)
	})

	// routes behind bearer-token authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Delete("/login", h.logout)
		r.Get("/user", h.listUsers)
		r.Delete("/user", h.deleteAllUsers)

		r.Get("/recipe", h.searchRecipes)
		r.Post("/recipe", h.addRecipe)
		r.Get("/recipe/{recipe_id}/check/{user_id}", h.checkRecipe)
		r.Get("/recipe/{id}", h.recipeDetail)
		r.Post("/recipe/{id}", h.addInstruction)

		r.Get("/inventory/{user_id}", h.getInventory)
		r.Post("/inventory/{user_id}", h.setInventory)
		r.Get("/shopping/{user_id}", h.getShopping)
		r.Post("/shopping/{user_id}", h.setShopping)
		r.Post("/shopping/flash", h.flashShopping)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
