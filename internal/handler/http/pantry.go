package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/service"
	"github.com/plateup/plateup-server/internal/utils"
	"github.com/plateup/plateup-server/models"
)

func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "user_id")

	doc, err := h.services.PantryService.GetInventory(ctx, userID)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during inventory read")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.InventoryResponse{Inventory: doc}, http.StatusOK)
}

// setInventory replaces the user's inventory with the posted document and
// returns the stored snapshot.
func (h *Handler) setInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "user_id")

	var body models.InventoryResponse
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc, err := h.services.PantryService.ReplaceInventory(ctx, userID, body.Inventory)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during inventory replace")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.InventoryResponse{Inventory: doc}, http.StatusOK)
}

func (h *Handler) getShopping(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "user_id")

	doc, err := h.services.PantryService.GetShopping(ctx, userID)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during shopping list read")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.ShoppingResponse{Shopping: doc}, http.StatusOK)
}

// setShopping replaces the user's shopping list with the posted document and
// returns the stored snapshot.
func (h *Handler) setShopping(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "user_id")

	var body models.ShoppingResponse
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc, err := h.services.PantryService.ReplaceShopping(ctx, userID, body.Shopping)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during shopping list replace")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.ShoppingResponse{Shopping: doc}, http.StatusOK)
}

// flashRequest is the request body of the shopping-flash endpoint.
type flashRequest struct {
	UserID string `json:"user_id"`
}

// flashShopping merges the user's shopping list into the inventory, clears
// the list and returns the merged inventory.
func (h *Handler) flashShopping(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req flashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	merged, err := h.services.PantryService.Flash(ctx, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnitMismatch):
			log.Err(err).Msg("ingredient unit mismatch")
			http.Error(w, "ingredient unit mismatch", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during shopping flash")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.InventoryResponse{Inventory: merged}, http.StatusOK)
}
