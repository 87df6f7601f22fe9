package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cargo-analytics/internal/application/analytics"
	"github.com/jhoicas/cargo-analytics/internal/application/auth"
	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	StatisticsUC *analytics.StatisticsUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Estadísticas: Bearer Token + rol admin o manager
	stats := api.Group("/statistics",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin, entity.RoleManager),
	)
	statsHandler := NewStatisticsHandler(deps.StatisticsUC)
	stats.Get("/", statsHandler.Get)
	stats.Post("/compute", statsHandler.Compute)
	stats.Get("/export.csv", statsHandler.ExportCSV)
	stats.Get("/report.pdf", statsHandler.ExportPDF)
}
