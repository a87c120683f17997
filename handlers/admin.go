package handlers

import (
	"net/http"

	"flight-catering-api/config"
	"flight-catering-api/models"
	"flight-catering-api/pricing"

	"github.com/gin-gonic/gin"
)

type MenuItemRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Description string                     `json:"description"`
	Category    string                     `json:"category" binding:"required"`
	Unit        string                     `json:"unit"`
	IsAvailable *bool                      `json:"is_available"`
	PriceCents  map[pricing.Location]int64 `json:"price_cents_by_location" binding:"required"`
}

// validatePrices enforces the catalog invariant: one non-negative cent price
// per supported location, no extras, no gaps.
func validatePrices(prices map[pricing.Location]int64) string {
	for _, loc := range pricing.Locations() {
		cents, ok := prices[loc]
		if !ok {
			return "Missing price for location '" + string(loc) + "'"
		}
		if cents < 0 {
			return "Price for location '" + string(loc) + "' must not be negative"
		}
	}
	for loc := range prices {
		if !loc.Valid() {
			return "Unknown location '" + string(loc) + "'"
		}
	}
	return ""
}

// AddMenuItem creates a menu item with a price for every kitchen — admin only
func AddMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validatePrices(req.PriceCents); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Unit:        req.Unit,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	for _, loc := range pricing.Locations() {
		item.Prices = append(item.Prices, models.MenuItemPrice{
			Location:   loc,
			PriceCents: req.PriceCents[loc],
		})
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

// UpdateMenuItem updates a menu item and its per-location prices — admin only
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.Preload("Prices").First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validatePrices(req.PriceCents); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.Unit = req.Unit
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}

	for _, loc := range pricing.Locations() {
		config.DB.Model(&models.MenuItemPrice{}).
			Where("menu_item_id = ? AND location = ?", item.ID, loc).
			Update("price_cents", req.PriceCents[loc])
	}

	config.DB.Preload("Prices").First(&item, item.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item and its prices — admin only. Orders that
// already snapshot the item keep their stored prices.
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	config.DB.Where("menu_item_id = ?", item.ID).Delete(&models.MenuItemPrice{})
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted", "item_id": item.ID})
}

// AdminGetAllOrders returns all orders with full detail — admin only
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.MenuItem").
		Preload("Customer").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}

	query.Order("created_at desc").Find(&orders)

	// Admin dashboard: aggregate by status; revenue stays in cents until the
	// single formatting boundary
	summary := map[string]int{}
	var revenueCents int64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			revenueCents += o.TotalCents
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary":       summary,
		"total_revenue_cents": revenueCents,
		"total_revenue":       pricing.FormatEuros(revenueCents),
		"count":               len(orders),
		"orders":              orders,
	})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminForceOrderStatus lets admin override any order state (emergency use)
func AdminForceOrderStatus(c *gin.Context) {
	orderID := c.Param("id")
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Reason string             `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	prevStatus := order.Status
	config.DB.Model(&order).Update("status", req.Status)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		Note:       "[ADMIN OVERRIDE] " + req.Reason,
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}
