package models

import (
	"time"

	"flight-catering-api/pricing"
)

type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"` // display only, e.g. "per piece"
	IsAvailable bool            `json:"is_available" gorm:"default:true"`
	Prices      []MenuItemPrice `json:"prices,omitempty" gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MenuItemPrice is one kitchen location's price for a menu item, stored in
// cents. Every item must carry a row per supported location.
type MenuItemPrice struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	MenuItemID uint             `json:"menu_item_id" gorm:"not null;uniqueIndex:idx_item_location"`
	Location   pricing.Location `json:"location" gorm:"not null;uniqueIndex:idx_item_location"`
	PriceCents int64            `json:"price_cents" gorm:"not null"`
}

// CatalogItem converts a stored menu item into the pricing engine's view.
func (m MenuItem) CatalogItem() pricing.CatalogItem {
	prices := make(map[pricing.Location]int64, len(m.Prices))
	for _, p := range m.Prices {
		prices[p.Location] = p.PriceCents
	}
	return pricing.CatalogItem{
		ID:                  m.ID,
		Name:                m.Name,
		Category:            m.Category,
		Unit:                m.Unit,
		Available:           m.IsAvailable,
		UnitPriceByLocation: prices,
	}
}

// CatalogItems converts a menu listing into a pricing catalog input.
func CatalogItems(items []MenuItem) []pricing.CatalogItem {
	out := make([]pricing.CatalogItem, 0, len(items))
	for _, m := range items {
		out = append(out, m.CatalogItem())
	}
	return out
}
