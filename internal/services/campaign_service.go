package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prospectr/backend/internal/models"
	"github.com/prospectr/backend/internal/repositories"
	"go.uber.org/zap"
)

type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	auditRepo    *repositories.AuditRepo
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		auditRepo:    auditRepo,
		log:          log,
	}
}

func (s *CampaignService) Create(ctx context.Context, orgID, userID uuid.UUID, c *models.Campaign) error {
	if err := c.ICPConfig.Validate(); err != nil {
		return err
	}

	c.OrganizationID = orgID
	c.CreatedBy = userID
	c.Status = models.CampaignStatusDraft

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		OrganizationID: orgID,
		ActorUserID:    &userID,
		ActorType:      "user",
		Action:         "campaign_created",
		EntityType:     "campaign",
		EntityID:       &c.ID,
	})

	return nil
}

func (s *CampaignService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, orgID, id)
}

func (s *CampaignService) List(ctx context.Context, orgID uuid.UUID, f repositories.CampaignFilter) ([]models.Campaign, error) {
	return s.campaignRepo.List(ctx, orgID, f)
}

func (s *CampaignService) Update(ctx context.Context, orgID, id uuid.UUID, c *models.Campaign) error {
	existing, err := s.campaignRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return fmt.Errorf("campaign not found")
	}
	if existing.Status == models.CampaignStatusRunning {
		return fmt.Errorf("campaign is running, wait for the run to finish")
	}

	if err := c.ICPConfig.Validate(); err != nil {
		return err
	}

	c.ID = id
	c.OrganizationID = orgID
	c.CreatedBy = existing.CreatedBy
	if c.Status == "" {
		c.Status = existing.Status
	} else if c.Status != existing.Status && !models.IsValidCampaignTransition(existing.Status, c.Status) {
		return fmt.Errorf("invalid status transition from %s to %s", existing.Status, c.Status)
	}

	return s.campaignRepo.Update(ctx, c)
}

// SetStatus performs a validated status transition with an audit entry.
// The orchestrator handler uses it to flip draft->running->completed
// and back to draft on failure.
func (s *CampaignService) SetStatus(ctx context.Context, orgID, id uuid.UUID, newStatus string, actorID *uuid.UUID, actorType string) error {
	existing, err := s.campaignRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return fmt.Errorf("campaign not found")
	}
	if !models.IsValidCampaignTransition(existing.Status, newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", existing.Status, newStatus)
	}

	if err := s.campaignRepo.UpdateStatus(ctx, orgID, id, newStatus); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		OrganizationID: orgID,
		ActorUserID:    actorID,
		ActorType:      actorType,
		Action:         fmt.Sprintf("campaign_status_%s_to_%s", existing.Status, newStatus),
		EntityType:     "campaign",
		EntityID:       &id,
		Meta:           map[string]any{"old_status": existing.Status, "new_status": newStatus},
	})

	return nil
}

func (s *CampaignService) Delete(ctx context.Context, orgID, id uuid.UUID, actorID uuid.UUID) error {
	existing, err := s.campaignRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return fmt.Errorf("campaign not found")
	}
	if existing.Status == models.CampaignStatusRunning {
		return fmt.Errorf("campaign is running, wait for the run to finish")
	}

	if err := s.campaignRepo.Delete(ctx, orgID, id); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		OrganizationID: orgID,
		ActorUserID:    &actorID,
		ActorType:      "user",
		Action:         "campaign_deleted",
		EntityType:     "campaign",
		EntityID:       &id,
	})

	return nil
}
