package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-gateway/config"
	"storefront-gateway/internal/api"
	"storefront-gateway/internal/broker"
	"storefront-gateway/internal/client"
	"storefront-gateway/internal/notify"
	"storefront-gateway/internal/service"
	"storefront-gateway/internal/session"
	"storefront-gateway/internal/util"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront gateway")

	tp, err := util.InitTracer("storefront-gateway", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()

	var ordered session.OrderedSet
	switch cfg.Session.Store {
	case "redis":
		redisSet, err := session.NewRedisOrderedSet(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Session.TTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisSet.Close()
		ordered = redisSet
		log.Println("Redis session store connected")
	default:
		memSet := session.NewMemoryOrderedSet(cfg.Session.TTL)
		memSet.StartJanitor(janitorCtx)
		ordered = memSet
		log.Println("In-memory session store initialized")
	}

	var orderEvents service.ActivityEvents
	var productEvents api.ProductEvents
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicActivity)
		defer producer.Close()
		activity := broker.NewActivityPublisher(producer)
		orderEvents = activity
		productEvents = activity
		log.Println("Kafka activity publisher initialized")
	}

	inventoryHTTP := &http.Client{Timeout: cfg.Inventory.Timeout}
	orderHTTP := &http.Client{Timeout: cfg.Order.Timeout}

	inventoryClient := client.NewInventory(cfg.Inventory.BaseURL, inventoryHTTP)
	orderClient := client.NewOrders(cfg.Order.BaseURL, orderHTTP)

	productSync := service.NewProductSync(inventoryClient)
	orderSync := service.NewOrderSync(orderClient, inventoryClient, false)
	orderer := service.NewOrderer(productSync, orderSync, ordered, notify.NewLogNotifier(), orderEvents)

	// Warm the product list so one-click ordering works immediately.
	// A failed initial load is not fatal; the error surfaces through the
	// snapshot and the view offers a retry.
	productSync.Refresh(context.Background())

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(productSync, orderSync, orderer, productEvents, cfg.Session.CookieName, cfg.Session.TTL)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	janitorCancel()

	log.Println("Server exited")
}
