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
	"github.com/shopspring/decimal"

	appcart "github.com/jhoicas/Tienda-api/internal/application/cart"
	appcatalog "github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	infracatalog "github.com/jhoicas/Tienda-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Almacén clave-valor del dispositivo (usuarioActual, carrito_<usuario>,
	// stockProductos) y almacén de recibos
	store, err := storage.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("crear almacén de datos")
	}
	receipts, err := storage.NewReceiptStore(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("crear almacén de recibos")
	}

	sessionRepo := storage.NewSessionStore(store)
	cartRepo := storage.NewCartStore(store)
	stockRepo := storage.NewStockStore(store)
	catalogRepo := infracatalog.NewJSONLoader(cfg.Catalog.Path, cfg.Catalog.URL)

	limits := appcart.Limits{
		PurchaseCeiling:  decimal.NewFromInt(cfg.Store.PurchaseCeiling),
		FreeShippingFrom: decimal.NewFromInt(cfg.Store.FreeShippingFrom),
		ShippingCost:     decimal.NewFromInt(cfg.Store.ShippingCost),
	}

	cartUC := appcart.NewCartUseCase(limits, sessionRepo, cartRepo, stockRepo, log)
	sessionUC := session.NewSessionUseCase(sessionRepo, cartUC)
	catalogUC := appcatalog.NewCatalogUseCase(catalogRepo)

	receiptGen := infrapdf.NewMarotoReceiptGenerator("PicoSur")
	notifier := notify.NewLogNotifier(log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PicoSur Tienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:  sessionUC,
		CatalogUC:  catalogUC,
		CartUC:     cartUC,
		Limits:     limits,
		ReceiptGen: receiptGen,
		Receipts:   receipts,
		Notifier:   notifier,
		Log:        log,
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
