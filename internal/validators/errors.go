package validators

import "errors"

// Validation sentinels. Every rule violation maps to exactly one of these
// values so callers can classify failures with [errors.Is]; human-readable
// context is attached by wrapping.
var (
	// ErrBlankName is returned when a route name is empty or whitespace-only.
	ErrBlankName = errors.New("route name must not be blank")

	// ErrRatingNotPositive is returned when a rating is absent, zero,
	// or negative. Rating is mandatory on both create and update.
	ErrRatingNotPositive = errors.New("rating must be greater than 0")

	// ErrDistanceTooSmall is returned when a supplied distance is not
	// greater than 1. Absent distance is valid.
	ErrDistanceTooSmall = errors.New("distance must be greater than 1")

	// ErrCoordinatesIncomplete is returned when a coordinate pair is
	// supplied with either axis missing.
	ErrCoordinatesIncomplete = errors.New("coordinates x and y must both be present")

	// ErrCoordinateYTooLarge is returned when the y coordinate exceeds
	// the catalog-wide maximum of 552.
	ErrCoordinateYTooLarge = errors.New("y coordinate must be less than or equal to 552")

	// ErrCoordinateOutOfGeoRange is returned by geo validation when
	// x is outside [-180, 180] or y is outside [-90, 90].
	ErrCoordinateOutOfGeoRange = errors.New("coordinates outside geographic range")

	// ErrMissingOrigin is returned when a route has no origin location.
	ErrMissingOrigin = errors.New("origin location is required")

	// ErrUnknownSortKey is returned when a caller-selected sort key is not
	// one of "distance", "rating", or "name".
	ErrUnknownSortKey = errors.New("unknown sort key")

	// ErrDuplicateNameInBatch is returned when two candidate routes inside
	// one import batch share a name under case-insensitive comparison.
	ErrDuplicateNameInBatch = errors.New("duplicate route name in import batch")
)
