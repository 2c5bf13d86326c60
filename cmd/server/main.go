package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/marketway/storefront/internal/accounts"
	"github.com/marketway/storefront/internal/assets"
	"github.com/marketway/storefront/internal/catalog"
	"github.com/marketway/storefront/internal/messaging"
	"github.com/marketway/storefront/internal/orders"
	"github.com/marketway/storefront/internal/stats"
	"github.com/marketway/storefront/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	provider, err := telemetry.Setup(ctx, "storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := telemetry.OpenDB(ctx, "postgres", postgresURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	assetHostURL := os.Getenv("ASSET_HOST_URL")
	if assetHostURL == "" {
		logger.Error("ASSET_HOST_URL environment variable is required")
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	assetClient := assets.NewClient(assetHostURL, httpClient, logger)

	var producer *messaging.Producer
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		producer = messaging.NewProducer(strings.Split(kafkaBrokers, ","), messaging.TopicOrderCreated)
		defer func() { _ = producer.Close() }()
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	productRepo := catalog.NewProductRepository(db)
	userRepo := accounts.NewUserRepository(db)
	orderRepo := orders.NewOrderRepository(db)

	catalogService := catalog.NewService(productRepo, assetClient)
	accountService := accounts.NewService(userRepo)
	orderService := orders.NewService(userRepo, productRepo, orderRepo)
	aggregator := stats.NewAggregator(productRepo, orderRepo, userRepo)

	catalogHandler := catalog.NewHandler(catalogService, logger)
	accountHandler := accounts.NewHandler(accountService, logger)
	statsHandler := stats.NewHandler(aggregator, logger)
	assetHandler := assets.NewHandler(assetClient, logger)

	var orderHandler *orders.Handler
	if producer != nil {
		orderHandler = orders.NewHandler(orderService, producer, logger)
	} else {
		orderHandler = orders.NewHandler(orderService, nil, logger)
	}

	mux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, telemetry.WithHTTPRoute(h))
	}

	route("POST /auth/register", accountHandler.HandleRegister)
	route("POST /auth/login", accountHandler.HandleLogin)

	route("GET /products", catalogHandler.HandleList)
	route("GET /products/{id}", catalogHandler.HandleGet)
	route("POST /products", catalogHandler.HandleCreate)
	route("PUT /products/{id}", catalogHandler.HandleUpdate)
	route("DELETE /products/{id}", catalogHandler.HandleDelete)

	route("GET /sellers/{sellerId}/products", catalogHandler.HandleListBySeller)
	route("POST /sellers/{sellerId}/products", catalogHandler.HandleCreateForSeller)
	route("PUT /sellers/{sellerId}/products/{id}", catalogHandler.HandleUpdateForSeller)
	route("DELETE /sellers/{sellerId}/products/{id}", catalogHandler.HandleDeleteForSeller)
	route("GET /sellers/{sellerId}/orders", orderHandler.HandleListBySeller)
	route("GET /sellers/{sellerId}/statistics", statsHandler.HandleSeller)

	route("POST /orders", orderHandler.HandleCreate)
	route("GET /orders", orderHandler.HandleList)
	route("GET /orders/{id}", orderHandler.HandleGet)
	route("PATCH /orders/{id}/status", orderHandler.HandleUpdateStatus)
	route("DELETE /orders/{id}", orderHandler.HandleDelete)
	route("GET /users/{userId}/orders", orderHandler.HandleListByUser)

	route("GET /admin/users", accountHandler.HandleList)
	route("POST /admin/users", accountHandler.HandleCreate)
	route("PATCH /admin/users/{id}/role", accountHandler.HandleUpdateRole)
	route("DELETE /admin/users/{id}", accountHandler.HandleDelete)
	route("GET /admin/statistics", statsHandler.HandleSystem)

	route("POST /images", assetHandler.HandleUpload)

	mux.Handle("GET /metrics", provider.MetricsHandler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "storefront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
