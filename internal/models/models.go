package models

import "time"

// Order statuses reported by the order service
const (
	OrderStatusNew       = "NEW"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusFailed    = "FAILED"
)

// Order origins
const (
	OrderOriginInternal = "INTERNAL"
	OrderOriginExternal = "EXTERNAL"
)

// Product represents a catalog product as returned by the inventory service
type Product struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	EAN         string  `json:"ean,omitempty"`
}

// ProductRequest is the creation payload sent to the inventory service
type ProductRequest struct {
	Name        string  `json:"name"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// OrderItem is a line item within an order
type OrderItem struct {
	OrderItemID string `json:"orderItemId"`
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
}

// Order represents an order record returned by the order service.
// LegacyID carries the identifier field used by older order-service
// deployments; the client wrapper folds it into OrderID.
type Order struct {
	OrderID   string      `json:"orderId"`
	LegacyID  string      `json:"id,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Status    string      `json:"status"`
	Origin    string      `json:"origin"`
	Items     []OrderItem `json:"items"`
}

// NewOrder is a single line of an order-creation request
type NewOrder struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// DisplayOrder is the view-ready join of an order's first line item
// against the product catalog. It is derived state, never persisted.
type DisplayOrder struct {
	OrderID     string    `json:"orderId"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
}
