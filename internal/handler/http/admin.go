package http

import (
	"net/http"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/service"
	"github.com/ta4ilka/route-atlas/internal/utils"
)

func (h *Handler) requestAdminRole(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, ok := requesterFromRequest(r)
	if !ok {
		writeError(w, service.ErrTokenIsExpired)
		return
	}

	user, err := h.services.UserService.RequestAdminRole(r.Context(), requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.requestAdminRole").Msg("error requesting admin role")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, user, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.requestAdminRole").Msg("error writing response")
	}
}

func (h *Handler) listAdminRoleRequests(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, ok := requesterFromRequest(r)
	if !ok {
		writeError(w, service.ErrTokenIsExpired)
		return
	}

	users, err := h.services.UserService.ListAdminRoleRequests(r.Context(), requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.listAdminRoleRequests").Msg("error listing admin role requests")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, users, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.listAdminRoleRequests").Msg("error writing response")
	}
}

func (h *Handler) approveAdminRole(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, ok := requesterFromRequest(r)
	if !ok {
		writeError(w, service.ErrTokenIsExpired)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	user, err := h.services.UserService.ApproveAdminRole(r.Context(), id, requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.approveAdminRole").Int64("user_id", id).Msg("error approving admin role")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, user, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.approveAdminRole").Msg("error writing response")
	}
}
