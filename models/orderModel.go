package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRefunded  = "refunded"
)

// Order is created once with status "pending" and never updated by the
// checkout pipeline afterwards; status changes are an admin capability.
// DeliveryInfo is sparse: absent fields are omitted, never stored as null.
// OrphanedAt is stamped by the reconciler on pending orders that ended up
// with zero line items.
type Order struct {
	gorm.Model
	UserID           string         `json:"userId"`
	TotalAmountCents int64          `json:"totalAmountCents"`
	Status           string         `json:"status"`
	DeliveryInfo     datatypes.JSON `json:"deliveryInfo"`
	Metadata         datatypes.JSON `json:"metadata"`
	OrphanedAt       *time.Time     `json:"orphanedAt,omitempty"`
	OrderItems       []OrderItem    `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem identifiers are stored as strings regardless of the catalog's
// native id type.
type OrderItem struct {
	gorm.Model
	OrderID           uint   `json:"orderId"`
	ProductID         string `json:"productId"`
	ProductName       string `json:"productName"`
	VariantID         string `json:"variantId"`
	VariantName       string `json:"variantName"`
	Quantity          int    `json:"quantity"`
	PricePerItemCents int64  `json:"pricePerItemCents"`
}
