package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id string, productIDs ...string) models.Order {
	o := models.Order{
		OrderID:   id,
		CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		Status:    models.OrderStatusNew,
		Origin:    models.OrderOriginInternal,
		Items:     []models.OrderItem{},
	}
	for i, pid := range productIDs {
		o.Items = append(o.Items, models.OrderItem{
			OrderItemID: id + "-item-" + string(rune('a'+i)),
			ProductID:   pid,
			Quantity:    1,
		})
	}
	return o
}

func TestFetchAssemblesDisplayOrders(t *testing.T) {
	inventory := &fakeInventory{products: map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Gaming Laptop", Price: 1299.99},
		"p2": {ProductID: "p2", Name: "Wireless Mouse", Price: 49.99},
	}}
	orders := &fakeOrders{listResult: []models.Order{
		order("o1", "p1"),
		order("o2", "p2"),
	}}

	sync := NewOrderSync(orders, inventory, false)
	sync.Fetch(context.Background())

	list, loading, err := sync.Snapshot()
	require.NoError(t, err)
	assert.False(t, loading)
	require.Len(t, list, 2)
	assert.Equal(t, "Gaming Laptop", list[0].ProductName)
	assert.Equal(t, 1299.99, list[0].Price)
	assert.Equal(t, "Wireless Mouse", list[1].ProductName)
	assert.Equal(t, models.OrderStatusNew, list[0].Status)
}

func TestFetchSharedProductFetchedOnce(t *testing.T) {
	inventory := &fakeInventory{products: map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Shared", Price: 50},
	}}
	orders := &fakeOrders{listResult: []models.Order{
		order("o1", "p1"),
		order("o2", "p1"),
	}}

	sync := NewOrderSync(orders, inventory, false)
	sync.Fetch(context.Background())

	list, _, err := sync.Snapshot()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Shared", list[0].ProductName)
	assert.Equal(t, float64(50), list[0].Price)
	assert.Equal(t, "Shared", list[1].ProductName)
	assert.Equal(t, float64(50), list[1].Price)

	assert.Equal(t, 1, inventory.getCount("p1"))
}

func TestFetchEmptyItemsUsesSentinel(t *testing.T) {
	inventory := &fakeInventory{}
	orders := &fakeOrders{listResult: []models.Order{order("o1")}}

	sync := NewOrderSync(orders, inventory, false)
	sync.Fetch(context.Background())

	list, _, err := sync.Snapshot()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, UnknownProductName, list[0].ProductName)
	assert.Equal(t, float64(0), list[0].Price)
	assert.Equal(t, 0, inventory.getCount("p1"))
}

func TestFetchProductErrorIsContained(t *testing.T) {
	inventory := &fakeInventory{
		products: map[string]models.Product{
			"p2": {ProductID: "p2", Name: "Healthy", Price: 10},
		},
		getErrs: map[string]error{
			"p1": errors.New("Failed to load product"),
		},
	}
	orders := &fakeOrders{listResult: []models.Order{
		order("o1", "p1"),
		order("o2", "p2"),
	}}

	sync := NewOrderSync(orders, inventory, false)
	sync.Fetch(context.Background())

	list, _, err := sync.Snapshot()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ProductErrorName, list[0].ProductName)
	assert.Equal(t, float64(0), list[0].Price)
	assert.Equal(t, "Healthy", list[1].ProductName)
	assert.Equal(t, float64(10), list[1].Price)
}

func TestFetchListFailureClearsList(t *testing.T) {
	inventory := &fakeInventory{}
	orders := &fakeOrders{listErr: errors.New("Failed to fetch orders")}

	sync := NewOrderSync(orders, inventory, false)
	sync.Fetch(context.Background())

	list, loading, err := sync.Snapshot()
	assert.False(t, loading)
	require.EqualError(t, err, "Failed to fetch orders")
	assert.Empty(t, list)
}

func TestFetchFailureWithEmptyMessageFallsBack(t *testing.T) {
	inventory := &fakeInventory{}
	orders := &fakeOrders{listErr: errors.New("")}

	sync := NewOrderSync(orders, inventory, false)
	sync.Fetch(context.Background())

	_, _, err := sync.Snapshot()
	require.EqualError(t, err, "An error occurred")
}

func TestSubmitSuccessTriggersSingleRefetch(t *testing.T) {
	inventory := &fakeInventory{products: map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Laptop", Price: 999},
	}}
	orders := &fakeOrders{listResult: []models.Order{order("o1", "p1")}}

	sync := NewOrderSync(orders, inventory, false)
	err := sync.Submit(context.Background(), models.NewOrder{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	listCalls, createCalls := orders.counts()
	assert.Equal(t, 1, createCalls)
	assert.Equal(t, 1, listCalls)
	assert.Equal(t, []models.NewOrder{{ProductID: "p1", Quantity: 1}}, orders.lastBatch)

	list, _, snapErr := sync.Snapshot()
	assert.NoError(t, snapErr)
	assert.Len(t, list, 1)
}

func TestSubmitFailureIsRecordedAndReturned(t *testing.T) {
	inventory := &fakeInventory{}
	orders := &fakeOrders{createErr: errors.New("Failed to add order")}

	sync := NewOrderSync(orders, inventory, false)
	err := sync.Submit(context.Background(), models.NewOrder{ProductID: "p1", Quantity: 1})
	require.EqualError(t, err, "Failed to add order")

	listCalls, createCalls := orders.counts()
	assert.Equal(t, 1, createCalls)
	assert.Equal(t, 0, listCalls, "failed submit must not refetch")

	_, _, snapErr := sync.Snapshot()
	assert.EqualError(t, snapErr, "Failed to add order")
}

func TestSubmitFailureWithEmptyMessageFallsBack(t *testing.T) {
	inventory := &fakeInventory{}
	orders := &fakeOrders{createErr: errors.New("")}

	sync := NewOrderSync(orders, inventory, false)
	err := sync.Submit(context.Background(), models.NewOrder{ProductID: "p1", Quantity: 1})
	require.Error(t, err)

	_, _, snapErr := sync.Snapshot()
	assert.EqualError(t, snapErr, "An error occurred")
}

func TestStaleFetchDoesNotOverwriteNewerState(t *testing.T) {
	staleStarted := make(chan struct{})
	releaseStale := make(chan struct{})

	staleOrders := []models.Order{order("stale", "p1")}
	freshOrders := []models.Order{order("fresh-1", "p1"), order("fresh-2", "p1")}

	orders := &fakeOrders{listFns: []func() ([]models.Order, error){
		func() ([]models.Order, error) {
			close(staleStarted)
			<-releaseStale
			return staleOrders, nil
		},
		func() ([]models.Order, error) {
			return freshOrders, nil
		},
	}}
	inventory := &fakeInventory{products: map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Laptop", Price: 999},
	}}

	sync := NewOrderSync(orders, inventory, false)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sync.Fetch(context.Background())
	}()

	<-staleStarted
	sync.Fetch(context.Background())

	close(releaseStale)
	<-done

	list, loading, err := sync.Snapshot()
	require.NoError(t, err)
	assert.False(t, loading)
	require.Len(t, list, 2, "stale fetch result must not replace the newer one")
	assert.Equal(t, "fresh-1", list[0].OrderID)
}
