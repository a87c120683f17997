package models

import (
	"time"

	"flight-catering-api/pricing"
)

// OrderStatus represents all possible states of a catering order
type OrderStatus string

const (
	StatusSubmitted OrderStatus = "SUBMITTED"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	Reference  string           `json:"reference" gorm:"uniqueIndex;not null"`
	CustomerID uint             `json:"customer_id" gorm:"not null"`
	Customer   User             `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Location   pricing.Location `json:"location" gorm:"not null"`
	Status     OrderStatus      `json:"status" gorm:"not null;default:'SUBMITTED'"`

	// Authoritative money fields, all integer cents, computed server-side by
	// the pricing engine at submission time.
	SubtotalCents    int64   `json:"subtotal_cents" gorm:"not null"`
	DeliveryFeeCents int64   `json:"delivery_fee_cents" gorm:"not null"`
	VATRate          float64 `json:"vat_rate"`
	VATCents         int64   `json:"vat_cents"`
	VATIncluded      bool    `json:"vat_included"`
	TotalCents       int64   `json:"total_cents" gorm:"not null"`

	TailNumber    string               `json:"tail_number"` // aircraft the order is delivered to
	DeliveryTime  *time.Time           `json:"delivery_time"`
	DeliveryNotes string               `json:"delivery_notes"`
	Items         []OrderLineItem      `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderLineItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	// Snapshot of the resolved price and name at submission time
	UnitPriceCents      int64  `json:"unit_price_cents" gorm:"not null"`
	LineTotalCents      int64  `json:"line_total_cents" gorm:"not null"`
	Name                string `json:"name"`
	SpecialInstructions string `json:"special_instructions"`
}

// OrderStatusHistory tracks every status change for the audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
