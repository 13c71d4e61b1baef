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

	appanalytics "github.com/jvivanco/micromercado-api/internal/application/analytics"
	"github.com/jvivanco/micromercado-api/internal/application/auth"
	"github.com/jvivanco/micromercado-api/internal/application/inventory"
	"github.com/jvivanco/micromercado-api/internal/application/usecase"
	infrapdf "github.com/jvivanco/micromercado-api/internal/infrastructure/pdf"
	"github.com/jvivanco/micromercado-api/internal/infrastructure/postgres"
	httpRouter "github.com/jvivanco/micromercado-api/internal/interfaces/http"
	"github.com/jvivanco/micromercado-api/pkg/config"
	"github.com/jvivanco/micromercado-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	entradaRepo := postgres.NewEntradaRepository(pool)
	salidaRepo := postgres.NewSalidaRepository(pool)
	descuentoRepo := postgres.NewDescuentoRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movimientosUC := inventory.NewMovimientosUseCase(
		txRunner, productoRepo, loteRepo, movimientoRepo,
		entradaRepo, salidaRepo, descuentoRepo,
		decimal.NewFromFloat(cfg.IVA.Rate),
	)
	productoUC := usecase.NewProductoUseCase(productoRepo)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, movimientoRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: versión imprimible del kardex
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

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
		Title:    "Micromercado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductoUC:  productoUC,
		CategoriaUC: categoriaUC,
		ProveedorUC: proveedorUC,
		UsuarioUC:   usuarioUC,
		Movimientos: movimientosUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		KardexPDF:   pdfGenerator,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}
