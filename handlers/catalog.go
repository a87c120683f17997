package handlers

import (
	"net/http"

	"flight-catering-api/config"
	"flight-catering-api/models"
	"flight-catering-api/pricing"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the menu priced for a kitchen location (public). Prices go
// through the same resolver the order flow uses — the menu screen never
// computes or hardcodes a price itself.
func GetMenu(c *gin.Context) {
	location := pricing.Location(c.DefaultQuery("location", string(pricing.Thessaloniki)))
	if !location.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown location. Must be: thessaloniki or mykonos"})
		return
	}

	var items []models.MenuItem
	query := config.DB.Preload("Prices")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}

	resolver, err := pricing.NewResolver(pricing.NewCatalog(models.CatalogItems(items)), location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu := make([]gin.H, 0, len(items))
	for _, item := range items {
		cents, err := resolver.Resolve(item.ID, location)
		if err != nil {
			// A menu item without a price for this location is a catalog
			// integrity fault, not a free item.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		menu = append(menu, gin.H{
			"id":           item.ID,
			"name":         item.Name,
			"description":  item.Description,
			"category":     item.Category,
			"unit":         item.Unit,
			"is_available": item.IsAvailable,
			"price_cents":  cents,
			"price":        pricing.FormatEuros(cents),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"count":    len(menu),
		"menu":     menu,
	})
}

// GetLocations lists the supported kitchen locations (public)
func GetLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": pricing.Locations()})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	info := []gin.H{
		{"from": "SUBMITTED", "to": "CONFIRMED", "actor": "kitchen"},
		{"from": "SUBMITTED", "to": "CANCELLED", "actor": "kitchen or customer"},
		{"from": "CONFIRMED", "to": "PREPARING", "actor": "kitchen"},
		{"from": "CONFIRMED", "to": "CANCELLED", "actor": "kitchen or customer"},
		{"from": "PREPARING", "to": "READY", "actor": "kitchen"},
		{"from": "READY", "to": "DELIVERED", "actor": "kitchen"},
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"DELIVERED", "CANCELLED"},
		"description":     "Flight Catering Order Lifecycle State Machine",
	})
}
