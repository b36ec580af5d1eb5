// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"leisurelog/internal/tracker/adapters/http/admin"
	"leisurelog/internal/tracker/adapters/http/auth"
	"leisurelog/internal/tracker/adapters/http/entries"
	"leisurelog/internal/tracker/adapters/http/statistics"
	"leisurelog/internal/tracker/app/http/middleware"
	"leisurelog/internal/tracker/ports/api"
)

// ServiceName - имя сервиса в информационных ответах.
const ServiceName = "leisurelog"

// Deps объединяет зависимости маршрутизатора.
type Deps struct {
	AuthUseCase  api.AuthUseCase
	EntryUseCase api.EntryUseCase
	StatsUseCase api.StatisticsUseCase
	AdminUseCase api.AdminUseCase

	AdminPassword string
	CORSOrigins   []string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Deps) {
	authHandler := auth.NewHandler(deps.AuthUseCase)
	entriesHandler := entries.NewHandler(deps.EntryUseCase)
	statsHandler := statistics.NewHandler(deps.StatsUseCase)
	adminHandler := admin.NewHandler(deps.AdminUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.CORSOrigins,
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderAdminPassword},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete, fiber.MethodOptions},
	}))

	// Информационные endpoints.
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": ServiceName,
			"status":  "running",
		})
	})
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
		})
	})

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/send-otp", authHandler.SendOTP)
	authRoutes.Post("/verify-otp", authHandler.VerifyOTP)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Get("/me", authHandler.Me, middleware.NewAuthMiddleware(deps.AuthUseCase))

	// Маршруты записей (требуют авторизации).
	entriesRoutes := apiV1.Group("/entries")
	entriesRoutes.Use(middleware.NewAuthMiddleware(deps.AuthUseCase))
	entriesRoutes.Get("/can-submit", entriesHandler.CanSubmit)
	entriesRoutes.Post("/today", entriesHandler.Create)
	entriesRoutes.Get("/today", entriesHandler.GetToday)
	entriesRoutes.Get("/history", entriesHandler.History)

	// Маршруты статистики (требуют авторизации).
	statsRoutes := apiV1.Group("/statistics")
	statsRoutes.Use(middleware.NewAuthMiddleware(deps.AuthUseCase))
	statsRoutes.Get("/overview", statsHandler.Overview)
	statsRoutes.Get("/trends", statsHandler.Trends)
	statsRoutes.Delete("/reset", statsHandler.Reset)

	// Административные маршруты (пароль в заголовке).
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.NewAdminMiddleware(deps.AdminPassword))
	adminRoutes.Get("/users-stats", adminHandler.UsersStats)
	adminRoutes.Get("/word-cloud-data", adminHandler.WordCloudData)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
