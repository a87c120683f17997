package handlers

import (
	"net/http"
	"time"

	"flight-catering-api/config"
	"flight-catering-api/events"
	"flight-catering-api/middleware"
	"flight-catering-api/models"
	"flight-catering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetKitchenOrders returns orders for the kitchen dashboard, filterable by
// status and location
func GetKitchenOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.MenuItem").Preload("Customer")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}

	query.Order("created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// UpdateOrderStatus moves an order through the lifecycle (kitchen only)
func UpdateOrderStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Note   string             `json:"note"`
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

	if err := statemachine.CanTransition(order.Status, req.Status, "kitchen"); err != nil {
		middleware.RecordOrderOperation("status_change", false)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Invalid status transition",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", req.Status)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  userID,
		Note:       req.Note,
	}
	config.DB.Create(&history)

	publisher.Publish(events.OrderEvent{
		OrderID:    order.ID,
		Reference:  order.Reference,
		CustomerID: order.CustomerID,
		Type:       "status_changed",
		Status:     string(req.Status),
		Location:   order.Location,
		TotalCents: order.TotalCents,
		Occurred:   time.Now(),
	})
	middleware.RecordOrderOperation("status_change", true)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}
