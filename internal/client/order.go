package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/util"

	"go.uber.org/zap"
)

// Orders is the client wrapper for the remote order service
type Orders struct {
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
}

// NewOrders creates a new order client
func NewOrders(baseURL string, hc *http.Client) *Orders {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Orders{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		logger:  util.GetLogger(),
	}
}

// ListOrders fetches the order list. Older order-service deployments
// return the identifier under "id" and may omit the items array, so both
// are normalized before the list is handed out.
func (c *Orders) ListOrders(ctx context.Context, externalOrder bool) ([]models.Order, error) {
	endpoint := fmt.Sprintf("%s?externalOrder=%t", c.baseURL, externalOrder)

	var orders []models.Order
	if err := doJSON(ctx, c.hc, http.MethodGet, endpoint, nil, &orders, "Failed to fetch orders"); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].OrderID == "" {
			orders[i].OrderID = orders[i].LegacyID
		}
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// CreateOrders submits a batch of new orders. The storefront always
// submits single-element batches, but the wire format is an array.
func (c *Orders) CreateOrders(ctx context.Context, batch []models.NewOrder) error {
	if err := doJSON(ctx, c.hc, http.MethodPost, c.baseURL, batch, nil, "Failed to add order"); err != nil {
		return err
	}

	c.logger.Info("Orders created", zap.Int("count", len(batch)))
	return nil
}
