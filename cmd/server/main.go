package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kevscue/storefront/internal/adapter/handler"
	"github.com/kevscue/storefront/internal/adapter/notify"
	"github.com/kevscue/storefront/internal/adapter/storage"
	"github.com/kevscue/storefront/internal/config"
	"github.com/kevscue/storefront/internal/core/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MySQL: catalog, orders, customers, settings
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect mysql")
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mysql")
	}
	logger.Info().Msg("connected to mysql")

	if err := applySchema(ctx, db, cfg.SchemaFile); err != nil {
		logger.Fatal().Err(err).Str("schema", cfg.SchemaFile).Msg("failed to apply schema")
	}

	// Redis: cart snapshots
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	logger.Info().Msg("connected to redis")

	// RabbitMQ: order notifications
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect rabbitmq")
	}
	notifier, err := notify.NewWhatsAppNotifier(conn, cfg.NotifyQueue, cfg.WhatsAppPhone)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open notification channel")
	}
	logger.Info().Str("queue", cfg.NotifyQueue).Msg("connected to rabbitmq")

	store := storage.NewMySQLAdapter(db)
	snapshots := storage.NewRedisSnapshotStore(rdb)

	cart := service.NewCartService(ctx, snapshots, cfg.CartKey, logger.With().Str("component", "cart").Logger())
	checkout := service.NewCheckoutService(store, cfg.DefaultDeliveryFee, logger.With().Str("component", "checkout").Logger())
	orders := service.NewOrderService(store, store, notifier, cart, logger.With().Str("component", "orders").Logger())

	h := handler.NewHTTPHandler(cart, checkout, orders, store, store)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/products", h.Products)
	mux.HandleFunc("/api/cart", h.Cart)
	mux.HandleFunc("/api/cart/items", h.CartItems)
	mux.HandleFunc("/api/checkout", h.Checkout)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)

	notifier.Close()
	conn.Close()
	rdb.Close()
	db.Close()
	logger.Info().Msg("connections closed")
}

// applySchema runs the DDL file at boot. The DSN must allow multiStatements
// since the file holds the whole schema.
func applySchema(ctx context.Context, db *sql.DB, schemaFile string) error {
	b, err := os.ReadFile(schemaFile)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(b))
	return err
}
