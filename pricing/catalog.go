package pricing

// Location identifies the kitchen a delivery is prepared at. Every menu item
// carries one price per location.
type Location string

const (
	Thessaloniki Location = "thessaloniki"
	Mykonos      Location = "mykonos"
)

// Locations returns all supported kitchen locations.
func Locations() []Location {
	return []Location{Thessaloniki, Mykonos}
}

// Valid reports whether l is a supported kitchen location.
func (l Location) Valid() bool {
	return l == Thessaloniki || l == Mykonos
}

// CatalogItem is one menu item as the pricing engine sees it. Prices are
// integer cents; there is no float anywhere in the pricing path.
type CatalogItem struct {
	ID                  uint
	Name                string
	Category            string
	Unit                string
	Available           bool
	UnitPriceByLocation map[Location]int64
}

// Catalog is an immutable snapshot of the menu, loaded once per order session.
// Catalog invariant: every item has a price for every supported location; a
// missing entry surfaces as a MissingPriceError at resolution time, never as a
// silent zero.
type Catalog struct {
	items map[uint]CatalogItem
}

// NewCatalog builds a catalog snapshot from a list of items.
func NewCatalog(items []CatalogItem) *Catalog {
	m := make(map[uint]CatalogItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return &Catalog{items: m}
}

// Item looks up a catalog item by id.
func (c *Catalog) Item(id uint) (CatalogItem, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Len returns the number of items in the snapshot.
func (c *Catalog) Len() int {
	return len(c.items)
}
