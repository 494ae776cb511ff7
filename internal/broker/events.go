package broker

import (
	"context"
	"fmt"
	"time"

	"storefront-gateway/internal/models"

	"github.com/google/uuid"
)

// Activity event types
const (
	EventTypeOrderPlaced    = "storefront.order_placed"
	EventTypeProductCreated = "storefront.product_created"
)

// OrderPlacedEvent is emitted after a shopper successfully places an order
type OrderPlacedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"session_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
}

// ProductCreatedEvent is emitted after a product is created through the storefront
type ProductCreatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
}

// ActivityPublisher publishes storefront activity events. Publishing is
// best effort: callers log failures and never surface them to shoppers.
type ActivityPublisher struct {
	producer *Producer
}

// NewActivityPublisher creates a new activity publisher
func NewActivityPublisher(producer *Producer) *ActivityPublisher {
	return &ActivityPublisher{producer: producer}
}

// OrderPlaced publishes an order-placed activity event
func (ap *ActivityPublisher) OrderPlaced(ctx context.Context, sessionID string, product models.Product) error {
	event := OrderPlacedEvent{
		EventID:     uuid.New().String(),
		EventType:   EventTypeOrderPlaced,
		Timestamp:   time.Now(),
		SessionID:   sessionID,
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    1,
	}
	key := fmt.Sprintf("session-%s", sessionID)
	return ap.producer.PublishEvent(ctx, key, event)
}

// ProductCreated publishes a product-created activity event
func (ap *ActivityPublisher) ProductCreated(ctx context.Context, product models.Product) error {
	event := ProductCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeProductCreated,
		Timestamp: time.Now(),
		ProductID: product.ProductID,
		Name:      product.Name,
		Price:     product.Price,
	}
	key := fmt.Sprintf("product-%s", product.ProductID)
	return ap.producer.PublishEvent(ctx, key, event)
}
