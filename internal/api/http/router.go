package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/api/http/handlers"
	"github.com/liorkima5-coder/CityPulseAI/internal/auth"
	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Intake         *handlers.IntakeHandler
	Tickets        *handlers.TicketsHandler
	Leads          *handlers.LeadsHandler
	Categories     *handlers.CategoriesHandler
	Registry       *handlers.RegistryHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Resident-facing surface, no authentication.
	public := app.Group("/public")
	public.Get("/categories", cfg.Intake.ListCategories)
	public.Post("/tickets", cfg.Intake.SubmitTicket)
	public.Post("/leads", cfg.Intake.SubmitLead)

	app.Post("/auth/staff/login", cfg.Staff.Login)

	// Operator console, any authenticated staff role.
	console := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.StaffRoleAgent, domain.StaffRoleAdmin))
	console.Post("/tickets", cfg.Tickets.CreateTicket)
	console.Get("/tickets", cfg.Tickets.ListTickets)
	console.Get("/tickets/stats", cfg.Tickets.StatusCounts)
	console.Get("/tickets/geo", cfg.Tickets.ListGeotagged)
	console.Get("/tickets/:id", cfg.Tickets.GetTicket)
	console.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	console.Patch("/tickets/:id/notes", cfg.Tickets.UpdateNotes)

	console.Get("/leads", cfg.Leads.ListLeads)
	console.Post("/leads", cfg.Leads.CreateLead)
	console.Patch("/leads/:id/status", cfg.Leads.ToggleStatus)
	console.Delete("/leads/:id", cfg.Leads.DeleteLead)

	console.Get("/contacts", cfg.Registry.ListContacts)
	console.Get("/residents", cfg.Registry.ListResidents)

	console.Get("/categories", cfg.Categories.ListCategories)

	// Category administration is admin only.
	admin := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.StaffRoleAdmin))
	admin.Post("/categories", cfg.Categories.CreateCategory)
	admin.Patch("/categories/:id", cfg.Categories.UpdateCategory)
	admin.Delete("/categories/:id", cfg.Categories.DeleteCategory)
}
