package pricing

import (
	"fmt"
	"math"
)

// Business-rule defaults. Both can be overridden when constructing the
// calculator (config reads them from the environment).
const (
	DefaultDeliveryFeeCents int64   = 15000 // €150.00, location-independent
	DefaultVATRate          float64 = 0.13
)

// VATMode designates whether VAT is folded into the payable total or only
// reported alongside it. The two order flows of the business use different
// rules, so the caller must pick one explicitly — VAT is never silently
// included in one flow and excluded in another.
type VATMode string

const (
	// VATExcluded reports VAT as an informational field; the payable total is
	// subtotal + delivery fee.
	VATExcluded VATMode = "excluded"
	// VATIncluded folds VAT into the payable total: subtotal + delivery fee
	// + VAT on that sum.
	VATIncluded VATMode = "included"
)

// Valid reports whether m is a recognized VAT mode.
func (m VATMode) Valid() bool {
	return m == VATExcluded || m == VATIncluded
}

// LineItem is one cart entry as entered by the user. The unit price is
// deliberately absent: it is never trusted from client state and is always
// re-resolved against the catalog.
type LineItem struct {
	MenuItemID          uint
	Quantity            int
	SpecialInstructions string
}

// ResolvedLine is a line item after price resolution, carrying the snapshot
// the order will persist.
type ResolvedLine struct {
	MenuItemID          uint
	Name                string
	Quantity            int
	UnitPriceCents      int64
	LineTotalCents      int64
	SpecialInstructions string
}

// Totals is the computed money breakdown of an order. Every amount is an
// integer in cents; conversion to euros happens only in FormatEuros.
type Totals struct {
	SubtotalCents    int64   `json:"subtotal_cents"`
	DeliveryFeeCents int64   `json:"delivery_fee_cents"`
	VATRate          float64 `json:"vat_rate"`
	VATCents         int64   `json:"vat_cents"`
	VATIncluded      bool    `json:"vat_included"`
	TotalCents       int64   `json:"total_cents"`
}

// Quote is the full result of pricing a cart at a location.
type Quote struct {
	Location Location
	Lines    []ResolvedLine
	Totals   Totals
}

// Calculator composes line totals, the delivery fee and VAT into a final
// payable amount. It owns no state beyond its resolver and fee/rate inputs.
type Calculator struct {
	resolver         *Resolver
	deliveryFeeCents int64
	vatRate          float64
}

// NewCalculator creates a calculator over a resolver with the delivery fee
// and VAT rate in effect.
func NewCalculator(resolver *Resolver, deliveryFeeCents int64, vatRate float64) *Calculator {
	return &Calculator{
		resolver:         resolver,
		deliveryFeeCents: deliveryFeeCents,
		vatRate:          vatRate,
	}
}

// Quote re-resolves every line's unit price at the given location and computes
// the order totals. A resolution failure on any line aborts the whole quote —
// no partial or zero totals are ever produced.
func (c *Calculator) Quote(items []LineItem, location Location, mode VATMode) (*Quote, error) {
	lines := make([]ResolvedLine, 0, len(items))
	var subtotal int64

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("menu item %d: %w", item.MenuItemID, ErrNonPositiveQuantity)
		}
		cents, err := c.resolver.Resolve(item.MenuItemID, location)
		if err != nil {
			return nil, err
		}
		name := ""
		if it, ok := c.resolver.catalog.Item(item.MenuItemID); ok {
			name = it.Name
		}
		lineTotal := cents * int64(item.Quantity)
		subtotal += lineTotal
		lines = append(lines, ResolvedLine{
			MenuItemID:          item.MenuItemID,
			Name:                name,
			Quantity:            item.Quantity,
			UnitPriceCents:      cents,
			LineTotalCents:      lineTotal,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	totals := Totals{
		SubtotalCents:    subtotal,
		DeliveryFeeCents: c.deliveryFeeCents,
		VATRate:          c.vatRate,
	}
	base := subtotal + c.deliveryFeeCents
	totals.VATCents = vatCents(base, c.vatRate)
	if mode == VATIncluded {
		totals.VATIncluded = true
		totals.TotalCents = base + totals.VATCents
	} else {
		totals.TotalCents = base
	}

	return &Quote{Location: location, Lines: lines, Totals: totals}, nil
}

// vatCents computes VAT on an integer cent base, rounding half away from
// zero. The only float involved is the rate itself.
func vatCents(baseCents int64, rate float64) int64 {
	return int64(math.Round(float64(baseCents) * rate))
}
