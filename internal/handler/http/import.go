package http

import (
	"net/http"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/service"
	"github.com/ta4ilka/route-atlas/internal/utils"
)

// maxImportFileBytes caps a single import upload at 16 MiB.
const maxImportFileBytes = 16 << 20

func (h *Handler) importRoutes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, ok := requesterFromRequest(r)
	if !ok {
		writeError(w, service.ErrTokenIsExpired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportFileBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.importRoutes").Msg("error reading uploaded file")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}
	defer file.Close()

	history, err := h.services.ImportService.ImportRoutes(r.Context(), header.Filename, file, requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.importRoutes").Str("filename", header.Filename).Msg("error importing routes")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, history, http.StatusCreated); err != nil {
		log.Error().Err(err).Str("func", "Handler.importRoutes").Msg("error writing response")
	}
}

func (h *Handler) listImportHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, ok := requesterFromRequest(r)
	if !ok {
		writeError(w, service.ErrTokenIsExpired)
		return
	}

	history, err := h.services.ImportService.ListImportHistory(r.Context(), requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.listImportHistory").Msg("error listing import history")
		writeError(w, err)
		return
	}

	if _, err := utils.WriteJSON(w, history, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.listImportHistory").Msg("error writing response")
	}
}

func (h *Handler) importFileURL(w http.ResponseWriter, r *http.Request) {
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

	fileURL, err := h.services.ImportService.GetImportFileURL(r.Context(), id, requester)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.importFileURL").Int64("history_id", id).Msg("error getting import file url")
		writeError(w, err)
		return
	}

	response := map[string]string{"url": fileURL}
	if _, err := utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Error().Err(err).Str("func", "Handler.importFileURL").Msg("error writing response")
	}
}
