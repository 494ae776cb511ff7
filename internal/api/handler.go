package api

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/service"
	"storefront-gateway/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// priceRe mirrors the storefront create-item form: whole number or up to
// two decimal places.
var priceRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ProductEvents publishes catalog activity events. May be nil when
// event publishing is disabled.
type ProductEvents interface {
	ProductCreated(ctx context.Context, product models.Product) error
}

// Handler contains HTTP handlers
type Handler struct {
	products      *service.ProductSync
	orders        *service.OrderSync
	orderer       *service.Orderer
	events        ProductEvents
	sessionCookie string
	sessionTTL    time.Duration
	logger        *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *service.ProductSync,
	orders *service.OrderSync,
	orderer *service.Orderer,
	events ProductEvents,
	sessionCookie string,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		products:      products,
		orders:        orders,
		orderer:       orderer,
		events:        events,
		sessionCookie: sessionCookie,
		sessionTTL:    sessionTTL,
		logger:        util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.PUT("/products/catalog", h.setCatalogMode)
		v1.GET("/orders", h.listOrders)
		v1.POST("/orders", h.placeOrder)
		v1.GET("/orders/ordered", h.orderedItems)
	}
}

// toast is the notification payload the front end renders
type toast struct {
	Level       string `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func successToast(title, description string) toast {
	return toast{Level: "success", Title: title, Description: description}
}

func errorToast(title, description string) toast {
	return toast{Level: "error", Title: title, Description: description}
}

// errString converts an error into the nullable form the view expects
func errString(err error) *string {
	if err == nil {
		return nil
	}
	s := err.Error()
	return &s
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts returns the product synchronizer snapshot
func (h *Handler) listProducts(c *gin.Context) {
	products, loading, multiCatalog, err := h.products.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"products":     products,
		"isLoading":    loading,
		"error":        errString(err),
		"multiCatalog": multiCatalog,
	})
}

// createItemForm carries the create-item form fields. Values arrive as
// strings, matching form input state.
type createItemForm struct {
	Name        string `json:"name"`
	Stock       string `json:"stock"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// createProduct validates the create-item form and submits the product.
// Invalid input is rejected before any request reaches the inventory
// service.
func (h *Handler) createProduct(c *gin.Context) {
	var form createItemForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"toast": errorToast("Invalid request body", err.Error()),
		})
		return
	}

	if form.Name == "" || form.Stock == "" || form.Price == "" || form.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"toast": errorToast("Please fill in all fields", ""),
		})
		return
	}

	if !priceRe.MatchString(form.Price) {
		c.JSON(http.StatusBadRequest, gin.H{
			"toast": errorToast("Invalid price format", "Please enter a number (e.g., 299 or 299.99)"),
		})
		return
	}

	stock, err := strconv.Atoi(form.Stock)
	if err != nil || stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"toast": errorToast("Invalid stock value", "Please enter a whole number"),
		})
		return
	}

	price, _ := strconv.ParseFloat(form.Price, 64)

	created, err := h.products.Add(c.Request.Context(), models.ProductRequest{
		Name:        form.Name,
		Stock:       stock,
		Price:       price,
		Description: form.Description,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": errString(err),
			"toast": errorToast("Error creating product", ""),
		})
		return
	}

	if h.events != nil && created != nil {
		if err := h.events.ProductCreated(c.Request.Context(), *created); err != nil {
			h.logger.Warn("Failed to publish product created event", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": created,
		"toast":   successToast("Product created successfully!", form.Name+" has been added to the catalog."),
	})
}

type catalogModeRequest struct {
	MultiCatalog *bool `json:"multiCatalog" binding:"required"`
}

// setCatalogMode updates the multi-catalog toggle
func (h *Handler) setCatalogMode(c *gin.Context) {
	var req catalogModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	h.products.SetMultiCatalog(c.Request.Context(), *req.MultiCatalog)

	products, loading, multiCatalog, err := h.products.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"products":     products,
		"isLoading":    loading,
		"error":        errString(err),
		"multiCatalog": multiCatalog,
	})
}

// listOrders refreshes the display-ready order list and returns it
func (h *Handler) listOrders(c *gin.Context) {
	h.orders.Fetch(c.Request.Context())

	orders, loading, err := h.orders.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"orders":    orders,
		"isLoading": loading,
		"error":     errString(err),
	})
}

type placeOrderRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName"`
}

// placeOrder handles one-click ordering
func (h *Handler) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	sessionID := h.sessionID(c)

	placed, err := h.orderer.PlaceOrder(c.Request.Context(), sessionID, req.ProductID, req.ProductName)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": errString(err),
			"toast": errorToast("Failed to order "+req.ProductName, "Please try again later."),
		})
		return
	}
	if !placed {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	ordered, _ := h.orderer.OrderedItems(c.Request.Context(), sessionID)
	c.JSON(http.StatusCreated, gin.H{
		"orderedItems": ordered,
		"toast":        successToast(req.ProductName+" ordered successfully!", "Your order has been placed."),
	})
}

// orderedItems returns the session's ordered product IDs
func (h *Handler) orderedItems(c *gin.Context) {
	sessionID := h.sessionID(c)

	ordered, err := h.orderer.OrderedItems(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": errString(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderedItems": ordered,
	})
}

// sessionID returns the caller's session cookie, issuing one if absent
func (h *Handler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(h.sessionCookie); err == nil && id != "" {
		return id
	}

	id := uuid.New().String()
	c.SetCookie(h.sessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", false, true)
	return id
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
