package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/service"
	"github.com/plateup/plateup-server/internal/utils"
)

// credentials is the request body of the login endpoint.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongCredentials):
			log.Err(err).Msg("wrong email or password")
			http.Error(w, "wrong email or password", http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("id", foundUser.ID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, foundUser, http.StatusOK)
}

// logout confirms the end of a session. Tokens are stateless, so there is
// nothing to revoke server-side; the client discards its token.
func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("logged out"))
}
