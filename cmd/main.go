package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"warung-pos/internal/config"
	"warung-pos/internal/database"
	"warung-pos/internal/logger"
	"warung-pos/internal/messaging"
	"warung-pos/internal/notify"
	"warung-pos/internal/order"
	"warung-pos/internal/pricing"
	"warung-pos/internal/redisx"
	auditservice "warung-pos/internal/services/audit"
	orderservice "warung-pos/internal/services/order"
	"warung-pos/internal/subscribers"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (order-service, audit-subscriber)")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// A missing .env is fine; the config file carries the defaults
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.HTTP.Port,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "order-service":
		if err := runOrderService(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Order service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "audit-subscriber":
		if err := runAuditSubscriber(ctx, cfg, log); err != nil && err != context.Canceled {
			log.Error("service_failed", "Audit subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderService wires the pricing engine, notification hub and HTTP
// surface, then serves until shutdown
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	mqConn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer mqConn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	rdb, err := redisx.New(ctx, cfg.Redis.Addr)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer rdb.Close()

	log.Info("redis_connected", "Connected to Redis", requestID, nil)

	catalogRepo := database.NewCatalogRepository(db)
	orderRepo := database.NewOrderRepository(db)
	publisher := messaging.NewPublisher(mqConn, log)

	// Register the interested subsystems on the hub. Registration order does
	// not matter; deliveries are isolated and concurrent.
	hub := notify.NewHub(cfg.NotifyTimeout(), log)
	hub.Subscribe(subscribers.NewKitchenDisplay(rdb, cfg.Redis.Channel))
	hub.Subscribe(subscribers.NewCashierLedger())
	hub.Subscribe(subscribers.NewAuditTrail(publisher))
	hub.Subscribe(subscribers.NewOrderArchive(orderRepo))

	log.Info("subscribers_registered", "Notification hub ready", requestID, map[string]interface{}{
		"subscribers": hub.Subscribers(),
	})

	aggregator := order.NewAggregator(pricing.NewEngine(cfg.Pricing))

	service := orderservice.NewService(catalogRepo, catalogRepo, orderRepo, aggregator, hub, log)
	handler := orderservice.NewHandler(service, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Order Service started on port %d", cfg.HTTP.Port), requestID, map[string]interface{}{
			"port": cfg.HTTP.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runAuditSubscriber consumes the audit event queue until shutdown
func runAuditSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	mqConn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer mqConn.Close()

	consumer := messaging.NewConsumer(mqConn, log, messaging.AuditQueue, "audit-subscriber", 1)
	subscriber := auditservice.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}
