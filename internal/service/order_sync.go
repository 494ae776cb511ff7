package service

import (
	"context"
	"sync"
	"time"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/util"

	"go.uber.org/zap"
)

// Sentinel display values used when an order's line item cannot be
// resolved to a real product.
const (
	UnknownProductName = "Unknown Product"
	ProductErrorName   = "Error loading product"
)

// InventoryAPI is the slice of the inventory client the synchronizers consume
type InventoryAPI interface {
	ListProducts(ctx context.Context, multiCatalog bool) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string, multiCatalog bool) (*models.Product, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
}

// OrderAPI is the slice of the order client the synchronizers consume
type OrderAPI interface {
	ListOrders(ctx context.Context, externalOrder bool) ([]models.Order, error)
	CreateOrders(ctx context.Context, batch []models.NewOrder) error
}

// OrderSync keeps a display-ready order list in sync with the order
// service. Each fetch resolves every order's first line item against the
// inventory service through a per-fetch cache, so one refresh issues at
// most one product lookup per distinct product ID.
type OrderSync struct {
	orders    OrderAPI
	inventory InventoryAPI
	logger    *zap.Logger

	// externalOrders controls whether externally sourced orders are
	// included in the list.
	externalOrders bool

	mu       sync.Mutex
	list     []models.DisplayOrder
	loading  bool
	err      error
	fetchSeq uint64
}

// NewOrderSync creates a new order synchronizer
func NewOrderSync(orders OrderAPI, inventory InventoryAPI, externalOrders bool) *OrderSync {
	return &OrderSync{
		orders:         orders,
		inventory:      inventory,
		externalOrders: externalOrders,
		logger:         util.GetLogger(),
	}
}

// Snapshot returns the current display list together with the loading
// flag and the last fetch/submit error (nil when the last operation
// succeeded).
func (s *OrderSync) Snapshot() ([]models.DisplayOrder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]models.DisplayOrder, len(s.list))
	copy(list, s.list)
	return list, s.loading, s.err
}

// Fetch refreshes the display list from the order service. Failures are
// recorded in the synchronizer's error state rather than returned, so
// the view layer can render a retry affordance from Snapshot. A fetch
// that has been superseded by a newer one leaves all state untouched.
func (s *OrderSync) Fetch(ctx context.Context) {
	ctx, span := util.StartSpan(ctx, "OrderSync.Fetch")
	defer span.End()

	util.OrderFetchesTotal.Inc()
	start := time.Now()
	defer func() {
		util.OrderFetchLatency.Observe(time.Since(start).Seconds())
	}()

	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.loading = true
	s.err = nil
	external := s.externalOrders
	s.mu.Unlock()

	list, err := s.assemble(ctx, external)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		// a newer fetch owns the state now
		return
	}
	s.loading = false
	if err != nil {
		util.OrderFetchFailures.Inc()
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		s.err = normalizeErr(err)
		s.list = nil
		return
	}
	s.list = list
}

// Submit creates a single order and, on success, refreshes the display
// list. Unlike Fetch, failures are returned to the caller in addition to
// being recorded, so follow-on state changes can be skipped.
func (s *OrderSync) Submit(ctx context.Context, order models.NewOrder) error {
	ctx, span := util.StartSpan(ctx, "OrderSync.Submit")
	defer span.End()

	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()

	if err := s.orders.CreateOrders(ctx, []models.NewOrder{order}); err != nil {
		s.logger.Error("Failed to add order",
			zap.String("product_id", order.ProductID),
			zap.Error(err))

		s.mu.Lock()
		s.err = normalizeErr(err)
		s.mu.Unlock()
		return err
	}

	s.Fetch(ctx)
	return nil
}

// assemble joins the fetched orders against the product catalog.
// Lookups for distinct product IDs run concurrently; each order resolves
// independently, so one failed lookup degrades only its own record.
func (s *OrderSync) assemble(ctx context.Context, external bool) ([]models.DisplayOrder, error) {
	orders, err := s.orders.ListOrders(ctx, external)
	if err != nil {
		return nil, err
	}

	cache := newResolveCache(s.inventory)
	display := make([]models.DisplayOrder, len(orders))

	var wg sync.WaitGroup
	for i, order := range orders {
		display[i] = models.DisplayOrder{
			OrderID:     order.OrderID,
			ProductName: UnknownProductName,
			CreatedAt:   order.CreatedAt,
			Status:      order.Status,
		}
		if len(order.Items) == 0 {
			continue
		}

		wg.Add(1)
		go func(i int, productID string) {
			defer wg.Done()

			product, err := cache.Get(ctx, productID)
			if err != nil {
				util.ProductResolveFailures.Inc()
				s.logger.Warn("Failed to resolve product for order",
					zap.String("order_id", display[i].OrderID),
					zap.String("product_id", productID),
					zap.Error(err))
				display[i].ProductName = ProductErrorName
				return
			}

			display[i].ProductName = product.Name
			display[i].Price = product.Price
		}(i, order.Items[0].ProductID)
	}
	wg.Wait()

	return display, nil
}
