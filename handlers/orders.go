package handlers

import (
	"net/http"
	"time"

	"flight-catering-api/config"
	"flight-catering-api/events"
	"flight-catering-api/middleware"
	"flight-catering-api/models"
	"flight-catering-api/pricing"
	"flight-catering-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type OrderItemRequest struct {
	MenuItemID          uint   `json:"menu_item_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

type QuoteOrderRequest struct {
	Location string             `json:"location" binding:"required,location"`
	VATMode  string             `json:"vat_mode" binding:"omitempty,oneof=included excluded"`
	Items    []OrderItemRequest `json:"items"`
}

type PlaceOrderRequest struct {
	Location      string             `json:"location" binding:"required,location"`
	VATMode       string             `json:"vat_mode" binding:"omitempty,oneof=included excluded"`
	TailNumber    string             `json:"tail_number" binding:"required"`
	DeliveryTime  *time.Time         `json:"delivery_time"`
	DeliveryNotes string             `json:"delivery_notes"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1"`
}

// vatModeFromRequest defaults to the order-form rule: VAT reported but not
// folded into the total. The invoice flow asks for "included" explicitly.
func vatModeFromRequest(s string) pricing.VATMode {
	if s == string(pricing.VATIncluded) {
		return pricing.VATIncluded
	}
	return pricing.VATExcluded
}

func lineItemsFromRequest(items []OrderItemRequest) []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, pricing.LineItem{
			MenuItemID:          it.MenuItemID,
			Quantity:            it.Quantity,
			SpecialInstructions: it.SpecialInstructions,
		})
	}
	return out
}

// QuoteOrder recomputes cart totals server-side without persisting anything.
// The order form calls this on every cart or location change.
func QuoteOrder(c *gin.Context) {
	var req QuoteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	calc, _, err := newOrderSession(pricing.Location(req.Location))
	if err != nil {
		middleware.RecordOrderOperation("quote", false)
		c.JSON(pricingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	quote, err := calc.Quote(lineItemsFromRequest(req.Items), pricing.Location(req.Location), vatModeFromRequest(req.VATMode))
	if err != nil {
		middleware.RecordOrderOperation("quote", false)
		c.JSON(pricingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	middleware.RecordOrderOperation("quote", true)
	c.JSON(http.StatusOK, gin.H{
		"location": quote.Location,
		"items":    linesJSON(quote.Lines),
		"totals":   totalsJSON(quote.Totals),
	})
}

// PlaceOrder submits a catering order (customer only). Totals are always
// recomputed through the pricing engine; nothing from the client cart is
// trusted beyond item ids, quantities and instructions.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	location := pricing.Location(req.Location)

	calc, catalog, err := newOrderSession(location)
	if err != nil {
		middleware.RecordOrderOperation("submit", false)
		c.JSON(pricingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	// Unavailable items must not reach checkout
	for _, it := range req.Items {
		if item, ok := catalog.Item(it.MenuItemID); ok && !item.Available {
			middleware.RecordOrderOperation("submit", false)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
			return
		}
	}

	quote, err := calc.Quote(lineItemsFromRequest(req.Items), location, vatModeFromRequest(req.VATMode))
	if err != nil {
		middleware.RecordOrderOperation("submit", false)
		c.JSON(pricingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	orderItems := make([]models.OrderLineItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		orderItems = append(orderItems, models.OrderLineItem{
			MenuItemID:          line.MenuItemID,
			Quantity:            line.Quantity,
			UnitPriceCents:      line.UnitPriceCents,
			LineTotalCents:      line.LineTotalCents,
			Name:                line.Name,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	order := models.Order{
		Reference:        uuid.New().String(),
		CustomerID:       customerID,
		Location:         location,
		Status:           models.StatusSubmitted,
		SubtotalCents:    quote.Totals.SubtotalCents,
		DeliveryFeeCents: quote.Totals.DeliveryFeeCents,
		VATRate:          quote.Totals.VATRate,
		VATCents:         quote.Totals.VATCents,
		VATIncluded:      quote.Totals.VATIncluded,
		TotalCents:       quote.Totals.TotalCents,
		TailNumber:       req.TailNumber,
		DeliveryTime:     req.DeliveryTime,
		DeliveryNotes:    req.DeliveryNotes,
		Items:            orderItems,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		middleware.RecordOrderOperation("submit", false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// Record initial status history
	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusSubmitted,
		ChangedBy: customerID,
		Note:      "Order submitted by customer",
	}
	config.DB.Create(&history)

	publisher.Publish(events.OrderEvent{
		OrderID:    order.ID,
		Reference:  order.Reference,
		CustomerID: customerID,
		Type:       "submitted",
		Status:     string(order.Status),
		Location:   order.Location,
		TotalCents: order.TotalCents,
		Occurred:   time.Now(),
	})
	middleware.RecordOrderOperation("submit", true)

	config.DB.Preload("Items.MenuItem").First(&order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
		"totals":  totalsJSON(quote.Totals),
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.MenuItem").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items.MenuItem").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"total": pricing.FormatEuros(order.TotalCents),
	})
}

// CancelOrder cancels an order (customer can cancel SUBMITTED or CONFIRMED)
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		middleware.RecordOrderOperation("cancel", false)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", models.StatusCancelled)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  customerID,
		Note:       "Order cancelled by customer",
	}
	config.DB.Create(&history)

	publisher.Publish(events.OrderEvent{
		OrderID:    order.ID,
		Reference:  order.Reference,
		CustomerID: customerID,
		Type:       "cancelled",
		Status:     string(models.StatusCancelled),
		Location:   order.Location,
		TotalCents: order.TotalCents,
		Occurred:   time.Now(),
	})
	middleware.RecordOrderOperation("cancel", true)

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// GetOrderQR returns a PNG QR code of the order reference, printed on the
// delivery handoff sheet and scanned at the aircraft.
func GetOrderQR(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	png, err := qrcode.Encode(order.Reference, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
