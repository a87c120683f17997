package pricing

import (
	"errors"
	"fmt"
)

// ErrNonPositiveQuantity is returned when a line item reaches the calculator
// with quantity < 1. Such lines must be removed from the cart upstream.
var ErrNonPositiveQuantity = errors.New("line item quantity must be at least 1")

// UnknownMenuItemError means a line item references a catalog id that does not
// exist — usually a stale cart pointing at a deleted menu item.
type UnknownMenuItemError struct {
	MenuItemID uint
}

func (e *UnknownMenuItemError) Error() string {
	return fmt.Sprintf("unknown menu item %d: not in the loaded catalog", e.MenuItemID)
}

// UnsupportedLocationError means the caller supplied a location outside the
// two recognized kitchens. This is a caller bug, not bad data.
type UnsupportedLocationError struct {
	Location Location
}

func (e *UnsupportedLocationError) Error() string {
	return fmt.Sprintf("unsupported location %q: must be one of %v", e.Location, Locations())
}

// MissingPriceError means a catalog entry exists but has no price for the
// requested location. That violates the catalog invariant and must surface as
// a data-integrity fault, never as a free item.
type MissingPriceError struct {
	MenuItemID uint
	Location   Location
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("menu item %d has no price for location %q", e.MenuItemID, e.Location)
}
