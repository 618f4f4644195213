package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/prospectr/backend/internal/agents"
	"github.com/prospectr/backend/internal/ai"
	"github.com/prospectr/backend/internal/config"
	"github.com/prospectr/backend/internal/db"
	"github.com/prospectr/backend/internal/events"
	apphttp "github.com/prospectr/backend/internal/http"
	"github.com/prospectr/backend/internal/http/handlers"
	"github.com/prospectr/backend/internal/repositories"
	"github.com/prospectr/backend/internal/services"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	leadRepo := repositories.NewLeadRepo(pool)
	draftRepo := repositories.NewDraftRepo(pool)
	eventRepo := repositories.NewEventRepo(pool)
	runRepo := repositories.NewRunRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	bus := events.NewRedisBus(rdb, log)

	// AI pipeline
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, log)
	sourcingAgent := agents.NewSourcingAgent(aiClient, log)
	enrichmentAgent := agents.NewEnrichmentAgent(aiClient, log)
	outreachAgent := agents.NewOutreachAgent(aiClient, log)
	analysisAgent := agents.NewAnalysisAgent(aiClient, log)

	// Services
	campaignService := services.NewCampaignService(campaignRepo, auditRepo, log)
	creditService := services.NewCreditService(subscriptionRepo, log)
	orchestrator := services.NewOrchestrator(
		sourcingAgent, enrichmentAgent, outreachAgent, analysisAgent,
		leadRepo, draftRepo, eventRepo, runRepo, bus, log,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, creditService, orchestrator, runRepo, log)
	leadHandler := handlers.NewLeadHandler(leadRepo, draftRepo, eventRepo, log)
	creditsHandler := handlers.NewCreditsHandler(creditService, log)
	wsHub := handlers.NewWSHub(cfg, bus, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, campaignHandler, leadHandler, creditsHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
