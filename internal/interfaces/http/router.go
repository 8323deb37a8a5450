package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BrandoCommando/product-taxonomy/internal/application/usecase"
	"github.com/BrandoCommando/product-taxonomy/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	CatalogUC *usecase.CatalogUseCase
	SeedUC    *usecase.SeedUseCase
	JWTSecret string
	JWTIssuer string
	Gatherer  prometheus.Gatherer // nil = registro global
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Catálogo (público, solo lectura)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/properties/:id", catalogHandler.GetProperty)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Get("/catalog/stats", catalogHandler.Stats)

	// Siembra (Bearer Token con rol admin)
	seedHandler := NewSeedHandler(deps.SeedUC)
	seedGroup := api.Group("/seed", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole(jwt.RoleAdmin))
	seedGroup.Post("/", seedHandler.Seed)
	seedGroup.Post("/verify", seedHandler.Verify)
}
