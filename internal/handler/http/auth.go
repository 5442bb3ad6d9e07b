package http

import (
	"encoding/json"
	"net/http"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/service"
	"github.com/ta4ilka/route-atlas/internal/utils"
	"github.com/ta4ilka/route-atlas/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Error().Err(err).Str("func", "Handler.register").Msg("error decoding registration request")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), request)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.register").Msg("error registering user")
		writeError(w, err)
		return
	}

	h.issueToken(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Error().Err(err).Str("func", "Handler.login").Msg("error decoding login request")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	user, err := h.services.AuthService.Login(r.Context(), request)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.login").Msg("error logging in user")
		writeError(w, err)
		return
	}

	h.issueToken(w, r, user, http.StatusOK)
}

// issueToken creates a JWT for the authenticated user and writes it both to
// the Authorization header and the response body.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User, statusCode int) {
	log := logger.FromRequest(r)

	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.issueToken").Msg("error creating token")
		writeError(w, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)

	response := models.AuthResponse{
		Token:    token.SignedString,
		Username: user.Username,
		Roles:    user.Roles,
	}
	if _, err := utils.WriteJSON(w, response, statusCode); err != nil {
		log.Error().Err(err).Str("func", "Handler.issueToken").Msg("error writing response")
	}
}
