package service

import (
	"context"
	"errors"
	"sync"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/util"

	"go.uber.org/zap"
)

// genericErrMessage replaces failures that carry no usable message
const genericErrMessage = "An error occurred"

// ProductSync keeps the product catalog view in sync with the inventory
// service. It owns the multi-catalog toggle; changing the toggle
// triggers a refresh with the new value, and a refresh triggered by Add
// always reads the toggle at refresh time rather than a stale capture.
type ProductSync struct {
	inventory InventoryAPI
	logger    *zap.Logger

	mu           sync.Mutex
	products     []models.Product
	loading      bool
	err          error
	multiCatalog bool
	refreshSeq   uint64
}

// NewProductSync creates a new product synchronizer. The initial list is
// loaded by the first Refresh call (done by the server at startup).
func NewProductSync(inventory InventoryAPI) *ProductSync {
	return &ProductSync{
		inventory: inventory,
		logger:    util.GetLogger(),
	}
}

// Snapshot returns the current product list, loading flag, multi-catalog
// toggle value and the last error (nil when the last operation succeeded).
func (s *ProductSync) Snapshot() ([]models.Product, bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products, s.loading, s.multiCatalog, s.err
}

// Find looks up a product in the already-loaded list by ID
func (s *ProductSync) Find(productID string) (*models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ProductID == productID {
			product := s.products[i]
			return &product, true
		}
	}
	return nil, false
}

// SetMultiCatalog updates the toggle and refreshes the list when the
// value actually changed.
func (s *ProductSync) SetMultiCatalog(ctx context.Context, multiCatalog bool) {
	s.mu.Lock()
	changed := s.multiCatalog != multiCatalog
	s.multiCatalog = multiCatalog
	s.mu.Unlock()

	if changed {
		s.Refresh(ctx)
	}
}

// Refresh reloads the product list with the current toggle value.
// Failures are recorded in the synchronizer's error state rather than
// returned. A refresh superseded by a newer one leaves state untouched.
func (s *ProductSync) Refresh(ctx context.Context) {
	ctx, span := util.StartSpan(ctx, "ProductSync.Refresh")
	defer span.End()

	util.ProductRefreshesTotal.Inc()

	s.mu.Lock()
	s.refreshSeq++
	seq := s.refreshSeq
	s.loading = true
	s.err = nil
	multiCatalog := s.multiCatalog
	s.mu.Unlock()

	products, err := s.inventory.ListProducts(ctx, multiCatalog)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.refreshSeq {
		return
	}
	s.loading = false
	if err != nil {
		util.ProductRefreshFailures.Inc()
		s.logger.Error("Failed to fetch products",
			zap.Bool("multi_catalog", multiCatalog),
			zap.Error(err))
		s.err = normalizeErr(err)
		return
	}
	s.products = products
}

// Add creates a product and, on success, refreshes the list so it
// reflects the new entry. Failures are returned to the caller in
// addition to being recorded.
func (s *ProductSync) Add(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductSync.Add")
	defer span.End()

	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()

	created, err := s.inventory.CreateProduct(ctx, req)
	if err != nil {
		s.logger.Error("Failed to add product",
			zap.String("name", req.Name),
			zap.Error(err))

		s.mu.Lock()
		s.err = normalizeErr(err)
		s.mu.Unlock()
		return nil, err
	}

	util.ProductsCreatedTotal.Inc()
	s.Refresh(ctx)
	return created, nil
}

func normalizeErr(err error) error {
	if err == nil || err.Error() == "" {
		return errors.New(genericErrMessage)
	}
	return err
}
