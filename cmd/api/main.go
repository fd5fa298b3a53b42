package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/salon-inventario-api/internal/application/auth"
	"github.com/jhoicas/salon-inventario-api/internal/application/booking"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/application/usecase"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/events"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/salon-inventario-api/internal/infrastructure/pdf"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/salon-inventario-api/internal/interfaces/http"
	"github.com/jhoicas/salon-inventario-api/pkg/config"
	"github.com/jhoicas/salon-inventario-api/pkg/logger"
)

// txRunner transacciones del ledger y de las reservas.
type txRunner interface {
	inventory.TxRunner
	booking.TxRunner
}

type storage struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	bookings  repository.BookingRepository
	admins    repository.AdminRepository
	tx        txRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.App.Storage == "memory" {
		store := memory.NewStore()
		return &storage{
			products:  store.Products(),
			movements: store.Movements(),
			bookings:  store.Bookings(),
			admins:    store.Admins(),
			tx:        memory.NewTxRunner(store),
			close:     func() {},
		}, nil
	}
	shared := postgres.NewSharedPool(cfg.DB)
	pool, err := shared.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &storage{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		bookings:  postgres.NewBookingRepository(pool),
		admins:    postgres.NewAdminRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     shared.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer store.close()

	// Eventos: Kafka si hay brokers, si no se descartan.
	var publisher inventory.EventPublisher = events.Noop{}
	if len(cfg.Events.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Events.KafkaBrokers, cfg.Events.Topic), log.Component("events").Zerolog())
		defer kp.Close()
		publisher = kp
	}

	ledgerUC := inventory.NewLedgerUseCase(store.tx, publisher, cfg.Inventory.MaxRetries, log.Component("ledger").Zerolog())
	autoDeductUC := inventory.NewAutoDeductUseCase(
		store.bookings, store.products, ledgerUC, publisher,
		cfg.Inventory.DeductWorkers, log.Component("auto-deduct").Zerolog(),
	)
	productUC := usecase.NewProductUseCase(
		store.products, store.movements, store.tx, infrapdf.NewStockReportGenerator(),
		cfg.Inventory.DefaultLowStockThreshold, log.Component("catalog").Zerolog(),
	)
	bookingUC := booking.NewUseCase(store.bookings, store.tx, autoDeductUC, log.Component("bookings").Zerolog())
	authUC := auth.NewAuthUseCase(store.admins, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if created, err := authUC.EnsureBootstrapAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Error().Err(err).Msg("crear super-admin inicial")
	} else if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("super-admin inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (si se generó docs/swagger.json)
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Salon Inventario API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		Ledger:    ledgerUC,
		BookingUC: bookingUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
