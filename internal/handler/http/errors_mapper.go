package http

import (
	"errors"
	"net/http"

	"github.com/ta4ilka/route-atlas/internal/parser"
	"github.com/ta4ilka/route-atlas/internal/service"
	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,

	service.ErrInsufficientPermission:    http.StatusForbidden,
	service.ErrAdminEditingNotAllowed:    http.StatusForbidden,
	service.ErrImportHistoryAccessDenied: http.StatusForbidden,

	service.ErrAdminRoleAlreadyHeld:  http.StatusConflict,
	service.ErrAdminRoleNotRequested: http.StatusConflict,

	service.ErrImportFileEmpty:       http.StatusBadRequest,
	service.ErrImportFileUnavailable: http.StatusNotFound,

	validators.ErrBlankName:               http.StatusBadRequest,
	validators.ErrRatingNotPositive:       http.StatusBadRequest,
	validators.ErrDistanceTooSmall:        http.StatusBadRequest,
	validators.ErrCoordinatesIncomplete:   http.StatusBadRequest,
	validators.ErrCoordinateYTooLarge:     http.StatusBadRequest,
	validators.ErrCoordinateOutOfGeoRange: http.StatusBadRequest,
	validators.ErrMissingOrigin:           http.StatusBadRequest,
	validators.ErrUnknownSortKey:          http.StatusBadRequest,
	validators.ErrDuplicateNameInBatch:    http.StatusBadRequest,

	parser.ErrMalformedDocument: http.StatusBadRequest,
	parser.ErrEmptyDocument:     http.StatusBadRequest,

	store.ErrRouteNameTaken:        http.StatusConflict,
	store.ErrSerializationConflict: http.StatusConflict,
	store.ErrRouteNotFound:         http.StatusNotFound,
	store.ErrLocationNotFound:      http.StatusNotFound,
	store.ErrUsernameTaken:         http.StatusConflict,
	store.ErrUserNotFound:          http.StatusNotFound,
	store.ErrImportHistoryNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError reports err to the client with the mapped status code. Internal
// errors are reported generically so no storage detail leaks to callers.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
