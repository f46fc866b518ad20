package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/joelgarciajr84/library-backend-go/internal/config"
	"github.com/joelgarciajr84/library-backend-go/internal/core/service"
	"github.com/joelgarciajr84/library-backend-go/internal/handlers"
	"github.com/joelgarciajr84/library-backend-go/internal/infra/gateway"
	"github.com/joelgarciajr84/library-backend-go/internal/infra/storage"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	settings := config.LoadEnvironmentConfig()

	memory := storage.NewMemoryStorage()
	var books service.CatalogStore = memory
	var borrows service.BorrowStore = memory
	var ledger service.PaymentLedger = memory

	if settings.StorageBackend == config.StorageBackendPostgres {
		pool, err := pgxpool.New(context.Background(), settings.PostgresURL)
		if err != nil {
			slog.Error("postgres connection failed", "err", err)
			os.Exit(1)
		}
		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("postgres ping failed", "err", err)
			os.Exit(1)
		}
		pg := storage.NewPostgresStorage(pool)
		books, borrows = pg, pg
		slog.Info("using postgres storage")
	}

	if settings.RedisEnabled {
		rdb := redis.NewClient(&redis.Options{Addr: settings.RedisURL})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("redis failed", "err", err)
			os.Exit(1)
		}
		ledger = storage.NewRedisLedger(rdb)
		slog.Info("using redis payment ledger")
	}

	paymentGateway := gateway.NewSimulatedGateway(settings.GatewayLatency, nil)
	fees := service.NewFeeCalculator(borrows)
	catalog := service.NewCatalogService(books)
	circulation := service.NewCirculationService(books, borrows, fees)
	payments := service.NewPaymentService(books, fees, paymentGateway, ledger)

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	handlers.Register(app, catalog, circulation, payments, fees)

	slog.Info("server running", "port", settings.ServerPort)
	if err := app.Listen(":" + settings.ServerPort); err != nil {
		slog.Error("server failed", "err", err)
	}
}
