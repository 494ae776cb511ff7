package service

import (
	"context"
	"errors"
	"sync"

	"storefront-gateway/internal/models"
)

// fakeInventory is an in-memory InventoryAPI for synchronizer tests
type fakeInventory struct {
	mu sync.Mutex

	products   map[string]models.Product
	listResult []models.Product
	listErr    error
	createErr  error
	getErrs    map[string]error

	listCalls   int
	listFlags   []bool
	createCalls int
	getCalls    map[string]int

	// listFns, when non-empty, overrides listResult/listErr one call at
	// a time (used to orchestrate overlapping refreshes).
	listFns []func() ([]models.Product, error)
}

func (f *fakeInventory) ListProducts(_ context.Context, multiCatalog bool) ([]models.Product, error) {
	f.mu.Lock()
	f.listCalls++
	f.listFlags = append(f.listFlags, multiCatalog)
	var fn func() ([]models.Product, error)
	if len(f.listFns) > 0 {
		fn = f.listFns[0]
		f.listFns = f.listFns[1:]
	}
	f.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return f.listResult, f.listErr
}

func (f *fakeInventory) GetProduct(_ context.Context, productID string, _ bool) (*models.Product, error) {
	f.mu.Lock()
	if f.getCalls == nil {
		f.getCalls = make(map[string]int)
	}
	f.getCalls[productID]++
	f.mu.Unlock()

	if err, ok := f.getErrs[productID]; ok {
		return nil, err
	}
	product, ok := f.products[productID]
	if !ok {
		return nil, errors.New("Failed to load product")
	}
	return &product, nil
}

func (f *fakeInventory) CreateProduct(_ context.Context, req models.ProductRequest) (*models.Product, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Product{
		ProductID:   "created-1",
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
	}, nil
}

func (f *fakeInventory) getCount(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls[productID]
}

func (f *fakeInventory) lastListFlag() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listFlags[len(f.listFlags)-1]
}

// fakeOrders is an in-memory OrderAPI for synchronizer tests
type fakeOrders struct {
	mu sync.Mutex

	listResult []models.Order
	listErr    error
	createErr  error

	listCalls   int
	createCalls int
	lastBatch   []models.NewOrder

	listFns []func() ([]models.Order, error)
}

func (f *fakeOrders) ListOrders(_ context.Context, _ bool) ([]models.Order, error) {
	f.mu.Lock()
	f.listCalls++
	var fn func() ([]models.Order, error)
	if len(f.listFns) > 0 {
		fn = f.listFns[0]
		f.listFns = f.listFns[1:]
	}
	f.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return f.listResult, f.listErr
}

func (f *fakeOrders) CreateOrders(_ context.Context, batch []models.NewOrder) error {
	f.mu.Lock()
	f.createCalls++
	f.lastBatch = batch
	f.mu.Unlock()
	return f.createErr
}

func (f *fakeOrders) counts() (listCalls, createCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls
}

// recordingNotifier captures emitted notifications
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title)
}

func (n *recordingNotifier) Failure(title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, title)
}

// recordingEvents captures published activity events
type recordingEvents struct {
	mu     sync.Mutex
	placed []string
}

func (e *recordingEvents) OrderPlaced(_ context.Context, _ string, product models.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.placed = append(e.placed, product.ProductID)
	return nil
}
