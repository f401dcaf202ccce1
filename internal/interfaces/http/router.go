package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simple-inventory/internal/application/auth"
	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog   *catalog.Gateway
	Reports   *report.UseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Pages     PageLimits
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.Catalog)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Delete("/:id", categoryHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Catalog, deps.Pages)
	reportHandler := NewReportHandler(deps.Reports, productHandler)
	products.Get("/report.pdf", reportHandler.CatalogPDF)
	products.Get("/export.xml", reportHandler.CatalogXML)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}
