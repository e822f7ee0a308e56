package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/vinicius342/AnotaJa-sub000/config"
	"github.com/vinicius342/AnotaJa-sub000/controllers"
	"github.com/vinicius342/AnotaJa-sub000/logger"
	"github.com/vinicius342/AnotaJa-sub000/repository"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

func main() {
	// Load configuration from config/config.yml and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	// Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return err
	}
	log.Info("running database migrations", "driver", cfg.Database.Driver)
	if err := repository.Migrate(db); err != nil {
		return err
	}
	log.Info("database migration complete")
	store := repository.NewStore(db)

	// Receipts go to kafka when enabled, otherwise they are only logged
	var publisher services.IReceiptPublisher
	if cfg.Kafka.Enabled {
		kafkaSvc, err := services.NewKafkaService(cfg.Kafka.Brokers, log)
		if err != nil {
			return err
		}
		defer kafkaSvc.Close()
		publisher = services.NewKafkaReceiptPublisher(kafkaSvc, cfg.Kafka.Topic)
	} else {
		publisher = services.NewLogReceiptPublisher(log)
	}

	// Services
	catalogSvc := services.NewCatalogService(store, log)
	complementSvc := services.NewComplementService(store, log)
	customerSvc := services.NewCustomerService(store, log)
	orderSvc := services.NewOrderService(store, publisher, cfg.Receipt.Printer, log)

	// HTTP
	app := fiber.New(fiber.Config{
		AppName:      "anotaja",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency} ${error}\n",
	}))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	controllers.RegisterRoutes(app,
		controllers.NewCatalogController(catalogSvc, complementSvc),
		controllers.NewCustomerController(customerSvc, orderSvc),
		controllers.NewOrderController(orderSvc),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server is starting", "addr", addr)
	return app.Listen(addr)
}
