package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/service"
	"github.com/ta4ilka/route-atlas/internal/utils"
	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

func (h *Handler) createRoute(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, ok := requesterFromRequest(r)
	if !ok {
		writeError(w, service.ErrTokenIsExpired)
		return
	}

	var input models.RouteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Error().Err(err).Str("func", "Handler.createRoute").Msg("error decoding route payload")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	route, err := h.services.RouteService.CreateRoute(r.Context(), input, requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.createRoute").Msg("error creating route")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, route, http.StatusCreated); err != nil {
		log.Error().Err(err).Str("func", "Handler.createRoute").Msg("error writing response")
	}
}

func (h *Handler) getRoute(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	route, err := h.services.RouteService.GetRoute(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.getRoute").Int64("route_id", id).Msg("error getting route")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, route, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.getRoute").Msg("error writing response")
	}
}

func (h *Handler) listRoutes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	routes, err := h.services.RouteService.ListRoutes(r.Context())
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.listRoutes").Msg("error listing routes")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, routes, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.listRoutes").Msg("error writing response")
	}
}

func (h *Handler) updateRoute(w http.ResponseWriter, r *http.Request) {
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

	var update models.RouteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error().Err(err).Str("func", "Handler.updateRoute").Msg("error decoding route payload")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	route, err := h.services.RouteService.UpdateRoute(r.Context(), id, update, requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.updateRoute").Int64("route_id", id).Msg("error updating route")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, route, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.updateRoute").Msg("error writing response")
	}
}

func (h *Handler) deleteRoute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.services.RouteService.DeleteRoute(r.Context(), id, requester); err != nil {
		log.Error().Err(err).Str("func", "Handler.deleteRoute").Int64("route_id", id).Msg("error deleting route")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteRoutesByRating(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, ok := requesterFromRequest(r)
	if !ok {
		writeError(w, service.ErrTokenIsExpired)
		return
	}

	rating, err := pathID(r, "rating")
	if err != nil {
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	deleted, err := h.services.RouteService.DeleteRoutesByRating(r.Context(), rating, requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.deleteRoutesByRating").Int64("rating", rating).Msg("error deleting routes by rating")
		writeError(w, err)
		return
	}

	response := map[string]int{"deleted": deleted}
	if _, err := utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.deleteRoutesByRating").Msg("error writing response")
	}
}

func (h *Handler) searchRoutesByName(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	substring := r.URL.Query().Get("name")
	routes, err := h.services.RouteService.SearchRoutesByName(r.Context(), substring)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.searchRoutesByName").Msg("error searching routes")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, routes, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.searchRoutesByName").Msg("error writing response")
	}
}

func (h *Handler) routesRatingLessThan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	rating, err := pathID(r, "rating")
	if err != nil {
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	routes, err := h.services.RouteService.SearchRoutesByRatingLessThan(r.Context(), rating)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.routesRatingLessThan").Int64("rating", rating).Msg("error searching routes")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, routes, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.routesRatingLessThan").Msg("error writing response")
	}
}

func (h *Handler) findRoutesBetweenLocations(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	query := r.URL.Query()
	sortBy := validators.SortByName
	if raw := query.Get("sort"); raw != "" {
		parsed, err := validators.ParseSortKey(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		sortBy = parsed
	}

	routes, err := h.services.RouteService.FindRoutesBetweenLocations(r.Context(), query.Get("from"), query.Get("to"), sortBy)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.findRoutesBetweenLocations").Msg("error searching routes between locations")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, routes, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.findRoutesBetweenLocations").Msg("error writing response")
	}
}

func (h *Handler) listRouteAudit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	audits, err := h.services.RouteService.ListRouteAudit(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.listRouteAudit").Int64("route_id", id).Msg("error listing route audit")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, audits, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.listRouteAudit").Msg("error writing response")
	}
}

// pathID parses a chi URL parameter as a base-10 int64.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
