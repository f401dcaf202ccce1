package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/simple-inventory/docs"
	"github.com/jhoicas/simple-inventory/internal/application/auth"
	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/application/report"
	"github.com/jhoicas/simple-inventory/internal/domain/repository"
	"github.com/jhoicas/simple-inventory/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/simple-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/simple-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/simple-inventory/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/simple-inventory/internal/interfaces/http"
	"github.com/jhoicas/simple-inventory/pkg/config"
	"github.com/jhoicas/simple-inventory/pkg/logger"
)

// @title                       Simple Inventory API
// @version                     1.0
// @description                 Catálogo de productos y categorías.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		categoryRepo repository.CategoryRepository
		productRepo  repository.ProductRepository
		txRunner     catalog.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		categoryRepo, productRepo, txRunner = store.Categories(), store.Products(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("crear esquema")
			}
		}
		categoryRepo = postgres.NewCategoryRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	gateway := catalog.NewGateway(categoryRepo, productRepo, txRunner, catalog.WithLogger(log.Component("catalog")))
	reportUC := report.NewUseCase(gateway, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), xmlexport.NewExporter())

	authUC, err := auth.NewAuthUseCase(auth.Credentials{
		Email:        cfg.Auth.AdminEmail,
		Password:     cfg.Auth.AdminPassword,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		if errors.Is(err, auth.ErrNoCredentials) {
			log.Fatal().Msg("defina ADMIN_PASSWORD o ADMIN_PASSWORD_HASH")
		}
		log.Fatal().Err(err).Msg("configuración de auth")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Simple Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:   gateway,
		Reports:   reportUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Pages: httpRouter.PageLimits{
			Default: cfg.Catalog.DefaultPageSize,
			Max:     cfg.Catalog.MaxPageSize,
		},
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
