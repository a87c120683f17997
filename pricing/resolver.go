package pricing

// Resolver is the single place a unit price is looked up. Results are memoized
// per menu item for the currently selected location; switching location wipes
// the whole memo table before any further resolution, so a total computed
// after a location change can never see a price from the previous kitchen.
//
// A Resolver is owned by exactly one order session and is not safe for
// concurrent use.
type Resolver struct {
	catalog  *Catalog
	location Location
	memo     map[uint]int64
}

// NewResolver creates a resolver over a catalog snapshot for a starting
// location.
func NewResolver(catalog *Catalog, location Location) (*Resolver, error) {
	if !location.Valid() {
		return nil, &UnsupportedLocationError{Location: location}
	}
	return &Resolver{
		catalog:  catalog,
		location: location,
		memo:     make(map[uint]int64),
	}, nil
}

// Location returns the currently selected kitchen location.
func (r *Resolver) Location() Location {
	return r.location
}

// SetLocation switches the active kitchen and invalidates every memoized
// price. This is the only invalidation trigger.
func (r *Resolver) SetLocation(location Location) error {
	if !location.Valid() {
		return &UnsupportedLocationError{Location: location}
	}
	if location != r.location {
		r.location = location
		r.memo = make(map[uint]int64)
	}
	return nil
}

// Resolve returns the authoritative unit price in cents for a menu item at
// the given location. Passing a location different from the current one is a
// location change and clears the memo table first.
func (r *Resolver) Resolve(menuItemID uint, location Location) (int64, error) {
	if err := r.SetLocation(location); err != nil {
		return 0, err
	}
	if cents, ok := r.memo[menuItemID]; ok {
		return cents, nil
	}

	item, ok := r.catalog.Item(menuItemID)
	if !ok {
		return 0, &UnknownMenuItemError{MenuItemID: menuItemID}
	}
	cents, ok := item.UnitPriceByLocation[r.location]
	if !ok {
		return 0, &MissingPriceError{MenuItemID: menuItemID, Location: r.location}
	}

	r.memo[menuItemID] = cents
	return cents, nil
}
