package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/util"

	"go.uber.org/zap"
)

// Inventory is the client wrapper for the remote inventory service
type Inventory struct {
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
}

// NewInventory creates a new inventory client
func NewInventory(baseURL string, hc *http.Client) *Inventory {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Inventory{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		logger:  util.GetLogger(),
	}
}

// ListProducts fetches the product list, optionally spanning multiple
// external catalogs.
func (c *Inventory) ListProducts(ctx context.Context, multiCatalog bool) ([]models.Product, error) {
	endpoint := fmt.Sprintf("%s?multiCatalog=%t", c.baseURL, multiCatalog)

	var products []models.Product
	if err := doJSON(ctx, c.hc, http.MethodGet, endpoint, nil, &products, "Failed to load products"); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct fetches a single product by ID. The multiCatalog flag is
// honored as passed by the caller.
func (c *Inventory) GetProduct(ctx context.Context, productID string, multiCatalog bool) (*models.Product, error) {
	endpoint := fmt.Sprintf("%s/%s?multiCatalog=%t", c.baseURL, url.PathEscape(productID), multiCatalog)

	var product models.Product
	if err := doJSON(ctx, c.hc, http.MethodGet, endpoint, nil, &product, "Failed to load product"); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct submits a new product to the inventory service and
// returns the created record.
func (c *Inventory) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	var created models.Product
	if err := doJSON(ctx, c.hc, http.MethodPost, c.baseURL, req, &created, "Failed to add product"); err != nil {
		return nil, err
	}

	c.logger.Info("Product created", zap.String("name", req.Name))
	return &created, nil
}
