package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prospectr/backend/internal/config"
	"github.com/prospectr/backend/internal/http/handlers"
	"github.com/prospectr/backend/internal/middleware"
	"github.com/prospectr/backend/internal/rbac"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	campaignHandler *handlers.CampaignHandler,
	leadHandler *handlers.LeadHandler,
	creditsHandler *handlers.CreditsHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/token", authHandler.ExchangeToken)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/tones", metaHandler.GetTones)
	api.Get("/meta/industries", metaHandler.GetIndustries)
	api.Get("/meta/company-sizes", metaHandler.GetCompanySizes)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Campaigns
	protected.Post("/campaigns", middleware.RequirePermission(rbac.PermManageCampaigns), campaignHandler.CreateCampaign)
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id", middleware.RequirePermission(rbac.PermManageCampaigns), campaignHandler.UpdateCampaign)
	protected.Delete("/campaigns/:id", middleware.RequirePermission(rbac.PermManageCampaigns), campaignHandler.DeleteCampaign)
	protected.Post("/campaigns/:id/run", middleware.RequirePermission(rbac.PermRunCampaigns), campaignHandler.RunCampaign)
	protected.Get("/campaigns/:id/runs", campaignHandler.ListRuns)
	protected.Get("/campaigns/:id/leads", middleware.RequirePermission(rbac.PermViewLeads), leadHandler.ListByCampaign)

	// Leads
	protected.Get("/leads/:id", middleware.RequirePermission(rbac.PermViewLeads), leadHandler.GetLead)
	protected.Get("/leads/:id/drafts", middleware.RequirePermission(rbac.PermViewLeads), leadHandler.ListDrafts)
	protected.Get("/leads/:id/events", middleware.RequirePermission(rbac.PermViewLeads), leadHandler.ListEvents)
	protected.Patch("/leads/:id/status", middleware.RequirePermission(rbac.PermUpdateLeadStatus), leadHandler.UpdateStatus)

	// Credits
	protected.Get("/credits", creditsHandler.GetBalance)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
