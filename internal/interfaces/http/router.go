package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/relojeria-admin/internal/application/analytics"
	"github.com/jhoicas/relojeria-admin/internal/application/dto"
	"github.com/jhoicas/relojeria-admin/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName      string
	RemoteConfigured bool
	Accessors        *usecase.Accessors
	Analytics        *analytics.Aggregator
	Tickets          *usecase.ServiceTicketUseCase
	Metrics          prometheus.Gatherer // nil: sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		remote := "not_configured"
		if deps.RemoteConfigured {
			remote = "configured"
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName, Remote: remote})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.Accessors.Users)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Accessors.Products)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Accessors.Orders)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Patch("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	// Service requests
	services := api.Group("/service-requests")
	serviceHandler := NewServiceRequestHandler(deps.Accessors.ServiceRequests, deps.Tickets)
	services.Get("/", serviceHandler.List)
	services.Post("/", serviceHandler.Create)
	services.Get("/:id/pdf", serviceHandler.DownloadPDF)
	services.Get("/:id", serviceHandler.GetByID)
	services.Patch("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.Analytics)
	api.Get("/analytics/snapshot", analyticsHandler.Snapshot)
}
