package service

import (
	"context"
	"fmt"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/notify"
	"storefront-gateway/internal/session"
	"storefront-gateway/internal/util"

	"go.uber.org/zap"
)

// ActivityEvents receives best-effort activity events from the ordering
// workflow. May be left nil when event publishing is disabled.
type ActivityEvents interface {
	OrderPlaced(ctx context.Context, sessionID string, product models.Product) error
}

// Orderer implements the one-click ordering workflow: local product
// lookup, single-item order submission through the order synchronizer,
// and recording of the session's ordered items.
type Orderer struct {
	products *ProductSync
	orders   *OrderSync
	ordered  session.OrderedSet
	notifier notify.Notifier
	events   ActivityEvents
	logger   *zap.Logger
}

// NewOrderer creates a new ordering workflow
func NewOrderer(
	products *ProductSync,
	orders *OrderSync,
	ordered session.OrderedSet,
	notifier notify.Notifier,
	events ActivityEvents,
) *Orderer {
	return &Orderer{
		products: products,
		orders:   orders,
		ordered:  ordered,
		notifier: notifier,
		events:   events,
		logger:   util.GetLogger(),
	}
}

// PlaceOrder orders one unit of the given product for the session.
// A product ID not present in the loaded product list is a no-op: no
// network call is made and the session's ordered set is untouched.
// On failure the set is also untouched, so the UI still permits retry.
// A successful placement reloads the product list so stock counts
// reflect the purchase.
func (o *Orderer) PlaceOrder(ctx context.Context, sessionID, productID, productName string) (bool, error) {
	ctx, span := util.StartSpan(ctx, "Orderer.PlaceOrder")
	defer span.End()

	product, ok := o.products.Find(productID)
	if !ok {
		o.logger.Warn("Order for unknown product ignored",
			zap.String("product_id", productID))
		util.OrdersPlacedFailed.WithLabelValues("unknown_product").Inc()
		return false, nil
	}

	order := models.NewOrder{ProductID: product.ProductID, Quantity: 1}
	if err := o.orders.Submit(ctx, order); err != nil {
		util.OrdersPlacedFailed.WithLabelValues("submit_failed").Inc()
		o.notifier.Failure(
			fmt.Sprintf("Failed to order %s", productName),
			"Please try again later.")
		return false, err
	}

	// the purchase changed stock counts, so the catalog view is reloaded
	o.products.Refresh(ctx)

	if err := o.ordered.Add(ctx, sessionID, productID); err != nil {
		o.logger.Error("Failed to record ordered item",
			zap.String("session_id", sessionID),
			zap.String("product_id", productID),
			zap.Error(err))
	}

	util.OrdersPlacedTotal.Inc()
	o.notifier.Success(
		fmt.Sprintf("%s ordered successfully!", productName),
		"Your order has been placed.")

	if o.events != nil {
		if err := o.events.OrderPlaced(ctx, sessionID, *product); err != nil {
			o.logger.Warn("Failed to publish order placed event", zap.Error(err))
		}
	}

	return true, nil
}

// OrderedItems returns the session's ordered product IDs
func (o *Orderer) OrderedItems(ctx context.Context, sessionID string) ([]string, error) {
	return o.ordered.List(ctx, sessionID)
}
