package handlers

import (
	"errors"
	"net/http"

	"flight-catering-api/config"
	"flight-catering-api/events"
	"flight-catering-api/models"
	"flight-catering-api/pricing"
)

// publisher receives order events; nil when no broker is configured
var publisher *events.Publisher

// SetPublisher wires the order event publisher into the handlers
func SetPublisher(p *events.Publisher) {
	publisher = p
}

// newOrderSession loads a fresh catalog snapshot and builds the pricing
// session (resolver + calculator) for a location. Every quote and every order
// submission goes through here — no handler computes a price on its own.
func newOrderSession(location pricing.Location) (*pricing.Calculator, *pricing.Catalog, error) {
	var items []models.MenuItem
	if err := config.DB.Preload("Prices").Find(&items).Error; err != nil {
		return nil, nil, err
	}
	catalog := pricing.NewCatalog(models.CatalogItems(items))
	resolver, err := pricing.NewResolver(catalog, location)
	if err != nil {
		return nil, nil, err
	}
	calc := pricing.NewCalculator(resolver, config.DeliveryFeeCents(), config.VATRate())
	return calc, catalog, nil
}

// pricingErrorStatus maps pricing failures to HTTP statuses: caller bugs and
// stale carts are client errors, a missing catalog price is a server fault.
func pricingErrorStatus(err error) int {
	var unknown *pricing.UnknownMenuItemError
	var unsupported *pricing.UnsupportedLocationError
	var missing *pricing.MissingPriceError
	switch {
	case errors.As(err, &unknown):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.Is(err, pricing.ErrNonPositiveQuantity):
		return http.StatusBadRequest
	case errors.As(err, &missing):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// totalsJSON serializes computed totals, formatting each amount exactly once.
func totalsJSON(t pricing.Totals) map[string]interface{} {
	return map[string]interface{}{
		"subtotal_cents":     t.SubtotalCents,
		"subtotal":           pricing.FormatEuros(t.SubtotalCents),
		"delivery_fee_cents": t.DeliveryFeeCents,
		"delivery_fee":       pricing.FormatEuros(t.DeliveryFeeCents),
		"vat_rate":           t.VATRate,
		"vat_cents":          t.VATCents,
		"vat":                pricing.FormatEuros(t.VATCents),
		"vat_included":       t.VATIncluded,
		"total_cents":        t.TotalCents,
		"total":              pricing.FormatEuros(t.TotalCents),
	}
}

// linesJSON serializes resolved line items, formatting each amount exactly once.
func linesJSON(lines []pricing.ResolvedLine) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]interface{}{
			"menu_item_id":         l.MenuItemID,
			"name":                 l.Name,
			"quantity":             l.Quantity,
			"unit_price_cents":     l.UnitPriceCents,
			"unit_price":           pricing.FormatEuros(l.UnitPriceCents),
			"line_total_cents":     l.LineTotalCents,
			"line_total":           pricing.FormatEuros(l.LineTotalCents),
			"special_instructions": l.SpecialInstructions,
		})
	}
	return out
}
