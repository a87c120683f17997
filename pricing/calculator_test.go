package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T, location Location) *Calculator {
	t.Helper()
	r, err := NewResolver(testCatalog(), location)
	require.NoError(t, err)
	return NewCalculator(r, DefaultDeliveryFeeCents, DefaultVATRate)
}

func TestQuoteEmptyCart(t *testing.T) {
	calc := newTestCalculator(t, Thessaloniki)

	quote, err := calc.Quote(nil, Thessaloniki, VATExcluded)
	require.NoError(t, err)
	assert.Equal(t, int64(0), quote.Totals.SubtotalCents)
	assert.Equal(t, DefaultDeliveryFeeCents, quote.Totals.TotalCents)
	assert.False(t, quote.Totals.VATIncluded)
}

func TestQuoteSubtotalIsExactIntegerSum(t *testing.T) {
	calc := newTestCalculator(t, Thessaloniki)

	quote, err := calc.Quote([]LineItem{
		{MenuItemID: 1, Quantity: 3},
		{MenuItemID: 2, Quantity: 2},
	}, Thessaloniki, VATExcluded)
	require.NoError(t, err)

	// 3×300 + 2×2450, integer arithmetic only
	assert.Equal(t, int64(5800), quote.Totals.SubtotalCents)
	assert.Equal(t, int64(5800+15000), quote.Totals.TotalCents)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, int64(900), quote.Lines[0].LineTotalCents)
	assert.Equal(t, int64(4900), quote.Lines[1].LineTotalCents)
	assert.Equal(t, "Greek Salad", quote.Lines[0].Name)
}

func TestQuoteLocationSwitchScenario(t *testing.T) {
	// Item 1 costs 300 at Thessaloniki and 320 at Mykonos; 2× it must give
	// 600/15600 then 640/15640 after the switch.
	calc := newTestCalculator(t, Thessaloniki)
	cart := []LineItem{{MenuItemID: 1, Quantity: 2}}

	quote, err := calc.Quote(cart, Thessaloniki, VATExcluded)
	require.NoError(t, err)
	assert.Equal(t, int64(600), quote.Totals.SubtotalCents)
	assert.Equal(t, int64(15600), quote.Totals.TotalCents)
	assert.Equal(t, "€156.00", FormatEuros(quote.Totals.TotalCents))

	quote, err = calc.Quote(cart, Mykonos, VATExcluded)
	require.NoError(t, err)
	assert.Equal(t, int64(640), quote.Totals.SubtotalCents)
	assert.Equal(t, int64(15640), quote.Totals.TotalCents)
	assert.Equal(t, "€156.40", FormatEuros(quote.Totals.TotalCents))
}

func TestQuoteVATModes(t *testing.T) {
	calc := newTestCalculator(t, Thessaloniki)
	cart := []LineItem{{MenuItemID: 1, Quantity: 2}}

	excluded, err := calc.Quote(cart, Thessaloniki, VATExcluded)
	require.NoError(t, err)
	included, err := calc.Quote(cart, Thessaloniki, VATIncluded)
	require.NoError(t, err)

	// VAT is reported in both modes on the same base, but only folded into
	// the total when included.
	vat := vatCents(600+15000, DefaultVATRate)
	assert.Equal(t, vat, excluded.Totals.VATCents)
	assert.Equal(t, vat, included.Totals.VATCents)
	assert.Equal(t, int64(15600), excluded.Totals.TotalCents)
	assert.Equal(t, int64(15600)+vat, included.Totals.TotalCents)
	assert.True(t, included.Totals.VATIncluded)
	assert.False(t, excluded.Totals.VATIncluded)
}

func TestQuoteUnknownItemAbortsWholeTotal(t *testing.T) {
	calc := newTestCalculator(t, Thessaloniki)

	quote, err := calc.Quote([]LineItem{
		{MenuItemID: 1, Quantity: 1},
		{MenuItemID: 99, Quantity: 1},
	}, Thessaloniki, VATExcluded)

	var unknown *UnknownMenuItemError
	require.ErrorAs(t, err, &unknown)
	assert.Nil(t, quote, "no partial total may be produced")
}

func TestQuoteMissingPricePropagates(t *testing.T) {
	calc := newTestCalculator(t, Mykonos)

	_, err := calc.Quote([]LineItem{{MenuItemID: 3, Quantity: 1}}, Mykonos, VATExcluded)
	var missing *MissingPriceError
	require.ErrorAs(t, err, &missing)
}

func TestQuoteRejectsNonPositiveQuantity(t *testing.T) {
	calc := newTestCalculator(t, Thessaloniki)

	for _, qty := range []int{0, -1} {
		_, err := calc.Quote([]LineItem{{MenuItemID: 1, Quantity: qty}}, Thessaloniki, VATExcluded)
		require.ErrorIs(t, err, ErrNonPositiveQuantity)
	}
}

func TestQuoteDoesNotTrustStalePricesAcrossLocations(t *testing.T) {
	// Quoting at one location then the other through the same calculator must
	// re-resolve everything; the memo from the first location is discarded.
	calc := newTestCalculator(t, Thessaloniki)
	cart := []LineItem{{MenuItemID: 2, Quantity: 1}}

	first, err := calc.Quote(cart, Thessaloniki, VATExcluded)
	require.NoError(t, err)
	second, err := calc.Quote(cart, Mykonos, VATExcluded)
	require.NoError(t, err)

	assert.Equal(t, int64(2450), first.Lines[0].UnitPriceCents)
	assert.Equal(t, int64(2600), second.Lines[0].UnitPriceCents)
}
