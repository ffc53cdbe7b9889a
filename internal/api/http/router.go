package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/ticket-triage/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	View    *handlers.ViewHandler
	Tickets *handlers.TicketsHandler
	Filters *handlers.FiltersHandler
	Toast   *handlers.ToastHandler

	// MetricsPath is left unregistered when empty or when Gatherer is nil.
	MetricsPath string
	Gatherer    prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.MetricsPath != "" && cfg.Gatherer != nil {
		app.Get(cfg.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/view", cfg.View.GetView)
	api.Get("/view/stream", cfg.View.Stream)
	api.Get("/options", cfg.View.GetOptions)

	tickets := api.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/priority", cfg.Tickets.UpdatePriority)
	tickets.Patch("/:id/assignee", cfg.Tickets.UpdateAssignee)
	tickets.Post("/:id/open", cfg.Tickets.OpenDetails)
	api.Delete("/selection", cfg.Tickets.CloseDetails)
	api.Post("/modal", cfg.Tickets.OpenModal)
	api.Delete("/modal", cfg.Tickets.CloseModal)

	filters := api.Group("/filters")
	filters.Put("/status", cfg.Filters.SetStatus)
	filters.Put("/search", cfg.Filters.SetSearch)
	filters.Put("/sort", cfg.Filters.SetSort)
	filters.Post("/tags/:tag/toggle", cfg.Filters.ToggleTag)
	filters.Post("/tags/:tag/shortcut", cfg.Filters.TagShortcut)
	filters.Post("/priorities/:priority/toggle", cfg.Filters.TogglePriority)
	filters.Post("/assignees/:assignee/toggle", cfg.Filters.ToggleAssignee)
	filters.Delete("/", cfg.Filters.ClearAll)

	api.Post("/toast", cfg.Toast.Push)
	api.Delete("/toast", cfg.Toast.Dismiss)
}
