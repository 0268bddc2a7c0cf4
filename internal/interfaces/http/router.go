package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/invoicepdf/invoice-api/internal/application/document"
	"github.com/invoicepdf/invoice-api/internal/application/presets"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	DocumentSvc *document.Service
	PresetSvc   *presets.Service
	Registry    *prometheus.Registry
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	metrics := NewMetrics(deps.Registry)

	// Document lifecycle
	doc := api.Group("/document")
	documentHandler := NewDocumentHandler(deps.DocumentSvc, metrics)
	doc.Get("/", documentHandler.Get)
	doc.Put("/", documentHandler.Put)
	doc.Post("/validate", documentHandler.Validate)
	doc.Post("/share", documentHandler.Share)
	doc.Get("/decode", documentHandler.Decode)
	doc.Post("/pdf", documentHandler.RenderPDF)

	// Seller presets
	sellers := api.Group("/presets/sellers")
	presetHandler := NewPresetHandler(deps.PresetSvc)
	sellers.Get("/", presetHandler.List)
	sellers.Post("/", presetHandler.Create)
	sellers.Put("/:id", presetHandler.Update)
	sellers.Delete("/:id", presetHandler.Delete)
	sellers.Post("/:id/apply", presetHandler.Apply)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(
		deps.Registry, promhttp.HandlerOpts{},
	)))
}
