package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/prospectr/backend/internal/config"
	"github.com/prospectr/backend/internal/db"
	"github.com/prospectr/backend/internal/models"
	"github.com/prospectr/backend/internal/repositories"
	"github.com/prospectr/backend/internal/services"
	"github.com/prospectr/backend/internal/webintel"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Repos
	campaignRepo := repositories.NewCampaignRepo(pool)
	leadRepo := repositories.NewLeadRepo(pool)
	runRepo := repositories.NewRunRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)

	creditService := services.NewCreditService(subscriptionRepo, log)
	fetcher := webintel.NewFetcher(cfg.SiteFetchTimeoutMS, cfg.SiteFetchMaxRetries, log)

	log.Info("worker started")

	// Run jobs on tickers
	stuckTicker := time.NewTicker(2 * time.Minute)
	rolloverTicker := time.NewTicker(10 * time.Minute)
	snapshotTicker := time.NewTicker(5 * time.Minute)
	defer stuckTicker.Stop()
	defer rolloverTicker.Stop()
	defer snapshotTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-stuckTicker.C:
			runStuckRecovery(ctx, runRepo, campaignRepo, cfg, log)
		case <-rolloverTicker.C:
			runRolloverSweep(ctx, subscriptionRepo, creditService, log)
		case <-snapshotTicker.C:
			runSnapshotBackfill(ctx, leadRepo, fetcher, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		}
	}
}

// runStuckRecovery fails runs that have held the running state longer
// than the timeout (an API crash mid-run leaves both the run and its
// campaign stuck) and releases their campaigns back to draft.
func runStuckRecovery(ctx context.Context, runRepo *repositories.RunRepo, campaignRepo *repositories.CampaignRepo, cfg *config.Config, log *zap.Logger) {
	runs, err := runRepo.GetStuckRuns(ctx, cfg.RunStuckTimeout)
	if err != nil {
		log.Error("stuck run query failed", zap.Error(err))
		return
	}

	for _, run := range runs {
		if err := runRepo.MarkFailed(ctx, run.OrganizationID, run.ID, 0, 0, "run timed out"); err != nil {
			log.Error("failed to fail stuck run", zap.String("run_id", run.ID.String()), zap.Error(err))
			continue
		}
		if err := campaignRepo.UpdateStatus(ctx, run.OrganizationID, run.CampaignID, models.CampaignStatusDraft); err != nil {
			log.Error("failed to release campaign", zap.String("campaign_id", run.CampaignID.String()), zap.Error(err))
		}
		log.Warn("recovered stuck run",
			zap.String("run_id", run.ID.String()),
			zap.String("campaign_id", run.CampaignID.String()),
		)
	}
}

// runRolloverSweep advances lapsed credit windows so balances are fresh
// even for organizations that have not made a request since reset.
func runRolloverSweep(ctx context.Context, subscriptionRepo *repositories.SubscriptionRepo, creditService *services.CreditService, log *zap.Logger) {
	subs, err := subscriptionRepo.ListDueForRollover(ctx)
	if err != nil {
		log.Error("rollover query failed", zap.Error(err))
		return
	}

	for _, sub := range subs {
		if err := creditService.MaybeRollover(ctx, sub.OrganizationID); err != nil {
			log.Error("rollover failed",
				zap.String("organization_id", sub.OrganizationID.String()), zap.Error(err))
		}
	}
}

// runSnapshotBackfill visits company websites captured during enrichment
// and folds title/description/technology signals into the lead's
// enriched data.
func runSnapshotBackfill(ctx context.Context, leadRepo *repositories.LeadRepo, fetcher *webintel.Fetcher, log *zap.Logger) {
	leads, err := leadRepo.ListMissingWebsiteSnapshot(ctx, 20)
	if err != nil {
		log.Error("snapshot backlog query failed", zap.Error(err))
		return
	}

	for _, lead := range leads {
		site, _ := lead.EnrichedData["company_website"].(string)
		if site == "" {
			continue
		}

		snap, err := fetcher.Fetch(ctx, site)
		if err != nil {
			log.Debug("website fetch failed",
				zap.String("lead_id", lead.ID.String()),
				zap.String("url", site),
				zap.Error(err),
			)
			// Write a tombstone so the lead leaves the backlog.
			_ = leadRepo.UpdateEnrichedData(ctx, lead.OrganizationID, lead.ID, map[string]any{
				"website_title": "",
				"website_error": err.Error(),
			})
			continue
		}

		update := map[string]any{
			"website_title":       snap.Title,
			"website_description": snap.Description,
			"website_fetched_at":  snap.FetchedAt.Format(time.RFC3339),
		}
		if len(snap.Technologies) > 0 {
			update["website_technologies"] = snap.Technologies
		}
		if err := leadRepo.UpdateEnrichedData(ctx, lead.OrganizationID, lead.ID, update); err != nil {
			log.Error("snapshot write failed", zap.String("lead_id", lead.ID.String()), zap.Error(err))
		}
	}
}
