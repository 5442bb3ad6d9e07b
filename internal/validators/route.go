// Package validators holds the pure validation rules shared by the
// single-route mutation path and the bulk import pipeline. All functions are
// side-effect-free and report violations through the package's sentinel
// errors, wrapped with enough context to identify the offending record.
package validators

import (
	"fmt"
	"strings"

	"github.com/ta4ilka/route-atlas/models"
)

// MaxY is the catalog-wide upper bound on the y coordinate.
const MaxY = 552.0

// Geographic bounds applied to import batches.
const (
	MinGeoX = -180.0
	MaxGeoX = 180.0
	MinGeoY = -90.0
	MaxGeoY = 90.0
)

// SortKey identifies a caller-selectable ordering for route queries.
type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByRating   SortKey = "rating"
	SortByName     SortKey = "name"
)

// ParseSortKey maps a caller-supplied string onto a [SortKey].
// Comparison is case-insensitive; anything outside the known set is a
// validation error, never a silent default.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(strings.ToLower(raw)) {
	case SortByDistance:
		return SortByDistance, nil
	case SortByRating:
		return SortByRating, nil
	case SortByName:
		return SortByName, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, raw)
	}
}

// ValidateNewRoute checks every field-level invariant on a route creation
// payload: non-blank name, complete coordinate pair within the y bound,
// required origin, distance > 1 when present, rating > 0.
func ValidateNewRoute(input models.RouteInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrBlankName
	}

	if err := ValidateCoordinates(input.Coordinates); err != nil {
		return err
	}

	if strings.TrimSpace(input.From.Name) == "" {
		return ErrMissingOrigin
	}

	return validateMetrics(input.Distance, input.Rating)
}

// ValidateRouteUpdate checks the fields present in a partial update payload.
// Absent optional fields are skipped; rating is always checked because its
// absence (decoded as zero) is an error on update, not a no-op.
func ValidateRouteUpdate(update models.RouteUpdate) error {
	if update.Coordinates != nil {
		if err := ValidateCoordinates(*update.Coordinates); err != nil {
			return err
		}
	}

	if update.From != nil && update.From.ID == nil && strings.TrimSpace(update.From.Name) == "" {
		return ErrMissingOrigin
	}

	return validateMetrics(update.Distance, update.Rating)
}

// ValidateCoordinates checks that both axes are present and that y does not
// exceed [MaxY].
func ValidateCoordinates(c models.CoordinatesInput) error {
	if c.X == nil || c.Y == nil {
		return ErrCoordinatesIncomplete
	}
	if *c.Y > MaxY {
		return fmt.Errorf("%w: got %v", ErrCoordinateYTooLarge, *c.Y)
	}
	return nil
}

// ValidateGeoCoordinates checks that a complete coordinate pair lies within
// the geographic ranges used by the import pipeline: x in [-180, 180] and
// y in [-90, 90].
func ValidateGeoCoordinates(c models.CoordinatesInput) error {
	if c.X == nil || c.Y == nil {
		return ErrCoordinatesIncomplete
	}
	if *c.X < MinGeoX || *c.X > MaxGeoX {
		return fmt.Errorf("%w: x=%v", ErrCoordinateOutOfGeoRange, *c.X)
	}
	if *c.Y < MinGeoY || *c.Y > MaxGeoY {
		return fmt.Errorf("%w: y=%v", ErrCoordinateOutOfGeoRange, *c.Y)
	}
	return nil
}

// ValidateImportBatch checks an import batch of candidate routes before any
// of them is written: per-route field invariants, geographic coordinate
// ranges, and in-batch name uniqueness under case-insensitive comparison.
//
// Collisions against already-persisted routes are checked separately by the
// import pipeline against the store.
func ValidateImportBatch(routes []models.RouteInput) error {
	seen := make(map[string]struct{}, len(routes))

	for _, candidate := range routes {
		if err := ValidateNewRoute(candidate); err != nil {
			return fmt.Errorf("route %q: %w", candidate.Name, err)
		}
		if err := ValidateGeoCoordinates(candidate.Coordinates); err != nil {
			return fmt.Errorf("route %q: %w", candidate.Name, err)
		}

		key := strings.ToLower(strings.TrimSpace(candidate.Name))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateNameInBatch, candidate.Name)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// validateMetrics applies the shared distance/rating rules: distance, when
// present, must exceed 1; rating must be positive.
func validateMetrics(distance *int64, rating int64) error {
	if distance != nil && *distance <= 1 {
		return fmt.Errorf("%w: got %d", ErrDistanceTooSmall, *distance)
	}
	if rating <= 0 {
		return fmt.Errorf("%w: got %d", ErrRatingNotPositive, rating)
	}
	return nil
}
