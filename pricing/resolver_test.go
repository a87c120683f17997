package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog([]CatalogItem{
		{
			ID: 1, Name: "Greek Salad", Category: "salad", Unit: "per portion", Available: true,
			UnitPriceByLocation: map[Location]int64{Thessaloniki: 300, Mykonos: 320},
		},
		{
			ID: 2, Name: "Grilled Sea Bass", Category: "main", Unit: "per portion", Available: true,
			UnitPriceByLocation: map[Location]int64{Thessaloniki: 2450, Mykonos: 2600},
		},
		{
			ID: 3, Name: "Espresso", Category: "beverage", Unit: "per cup", Available: true,
			// Deliberately missing the Mykonos price to exercise the
			// data-integrity failure path.
			UnitPriceByLocation: map[Location]int64{Thessaloniki: 350},
		},
	})
}

func TestResolverReturnsCatalogPrice(t *testing.T) {
	r, err := NewResolver(testCatalog(), Thessaloniki)
	require.NoError(t, err)

	for _, tc := range []struct {
		id       uint
		location Location
		want     int64
	}{
		{1, Thessaloniki, 300},
		{1, Mykonos, 320},
		{2, Thessaloniki, 2450},
		{2, Mykonos, 2600},
	} {
		got, err := r.Resolve(tc.id, tc.location)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "item %d at %s", tc.id, tc.location)
	}
}

func TestResolverRejectsUnknownItem(t *testing.T) {
	r, err := NewResolver(testCatalog(), Thessaloniki)
	require.NoError(t, err)

	_, err = r.Resolve(99, Thessaloniki)
	var unknown *UnknownMenuItemError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint(99), unknown.MenuItemID)
}

func TestResolverRejectsUnsupportedLocation(t *testing.T) {
	_, err := NewResolver(testCatalog(), Location("athens"))
	var unsupported *UnsupportedLocationError
	require.ErrorAs(t, err, &unsupported)

	r, err := NewResolver(testCatalog(), Mykonos)
	require.NoError(t, err)
	_, err = r.Resolve(1, Location(""))
	require.ErrorAs(t, err, &unsupported)
}

func TestResolverSurfacesMissingPrice(t *testing.T) {
	r, err := NewResolver(testCatalog(), Mykonos)
	require.NoError(t, err)

	_, err = r.Resolve(3, Mykonos)
	var missing *MissingPriceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, uint(3), missing.MenuItemID)
	assert.Equal(t, Mykonos, missing.Location)
}

func TestLocationChangeInvalidatesMemo(t *testing.T) {
	r, err := NewResolver(testCatalog(), Thessaloniki)
	require.NoError(t, err)

	got, err := r.Resolve(1, Thessaloniki)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got)

	// Same item after switching kitchens must reflect the new location's
	// price, never the memoized one.
	got, err = r.Resolve(1, Mykonos)
	require.NoError(t, err)
	assert.Equal(t, int64(320), got)

	require.NoError(t, r.SetLocation(Thessaloniki))
	got, err = r.Resolve(1, Thessaloniki)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got)
}

func TestResolverMemoizesWithinLocation(t *testing.T) {
	r, err := NewResolver(testCatalog(), Thessaloniki)
	require.NoError(t, err)

	_, err = r.Resolve(2, Thessaloniki)
	require.NoError(t, err)
	assert.Contains(t, r.memo, uint(2))

	// Memo survives repeated resolution at the same location...
	_, err = r.Resolve(2, Thessaloniki)
	require.NoError(t, err)
	assert.Len(t, r.memo, 1)

	// ...and is wiped entirely on location change.
	require.NoError(t, r.SetLocation(Mykonos))
	assert.Empty(t, r.memo)
}
