package brewery

import (
	"errors"
	"fmt"
)

// Failure kinds returned by engine operations. Every rejected operation
// wraps exactly one of these and leaves all ledgers untouched.
var (
	// ErrNotFound indicates a tank, keg, material, recipe or lot id that does not exist
	ErrNotFound = errors.New("not found")

	// ErrCapacityExceeded indicates a brew volume larger than the tank capacity
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInsufficientStock indicates a material, tank, keg or bottle-lot
	// quantity below what the operation requests
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrKegNotAvailable indicates a packaging target keg that is not Empty
	ErrKegNotAvailable = errors.New("keg not available")

	// ErrDuplicateKeg indicates a keg id already present in the fleet
	ErrDuplicateKeg = errors.New("duplicate keg id")

	// ErrLotNotFound indicates a bottle sale against a lot that does not exist
	ErrLotNotFound = errors.New("bottle lot not found")

	// ErrValidation indicates a blank required field or non-positive quantity
	ErrValidation = errors.New("validation failed")
)

// wrapf attaches context to a failure kind so callers can still match it
// with errors.Is.
func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Kind names the failure kind of a rejected operation, for metrics labels
// and API mapping. Unrecognized errors come out as "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrKegNotAvailable):
		return "keg_not_available"
	case errors.Is(err, ErrDuplicateKeg):
		return "duplicate_keg"
	case errors.Is(err, ErrLotNotFound):
		return "lot_not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
