package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prospectr/backend/internal/http/dto"
	"github.com/prospectr/backend/internal/middleware"
	"github.com/prospectr/backend/internal/models"
	"github.com/prospectr/backend/internal/repositories"
	"github.com/prospectr/backend/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	creditService   *services.CreditService
	orchestrator    *services.Orchestrator
	runRepo         *repositories.RunRepo
	log             *zap.Logger
}

func NewCampaignHandler(
	campaignService *services.CampaignService,
	creditService *services.CreditService,
	orchestrator *services.Orchestrator,
	runRepo *repositories.RunRepo,
	log *zap.Logger,
) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		creditService:   creditService,
		orchestrator:    orchestrator,
		runRepo:         runRepo,
		log:             log,
	}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "name is required"})
	}

	campaign := &models.Campaign{
		Name:          req.Name,
		ICPConfig:     req.ICPConfig,
		MessagingTone: req.MessagingTone,
		Goal:          req.Goal,
	}

	orgID := middleware.GetOrgID(c)
	userID := middleware.GetUserID(c)
	if err := h.campaignService.Create(c.Context(), orgID, userID, campaign); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	orgID := middleware.GetOrgID(c)
	campaign, err := h.campaignService.GetByID(c.Context(), orgID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	orgID := middleware.GetOrgID(c)
	filter := repositories.CampaignFilter{
		Status: c.Query("status"),
		Limit:  20,
		Offset: 0,
	}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	campaigns, err := h.campaignService.List(c.Context(), orgID, filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	campaign := &models.Campaign{
		Name:          req.Name,
		ICPConfig:     req.ICPConfig,
		MessagingTone: req.MessagingTone,
		Goal:          req.Goal,
		Status:        req.Status,
	}

	orgID := middleware.GetOrgID(c)
	if err := h.campaignService.Update(c.Context(), orgID, id, campaign); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	updated, _ := h.campaignService.GetByID(c.Context(), orgID, id)
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	orgID := middleware.GetOrgID(c)
	userID := middleware.GetUserID(c)
	if err := h.campaignService.Delete(c.Context(), orgID, id, userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

// RunCampaign triggers the prospecting pipeline for a campaign. Credits
// are checked against the worst-case estimate before the run starts and
// settled once with the actual amount afterwards; the campaign cannot
// be mutated while the run holds it in the running state.
func (h *CampaignHandler) RunCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.RunCampaignRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
		}
	}

	leadCount := req.LeadCount
	if leadCount <= 0 {
		leadCount = services.DefaultLeadCount
	}

	orgID := middleware.GetOrgID(c)
	userID := middleware.GetUserID(c)

	campaign, err := h.campaignService.GetByID(c.Context(), orgID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}

	estimate := leadCount * services.CreditsPerLeadEstimate
	ok, err := h.creditService.CheckAvailable(c.Context(), orgID, estimate)
	if err != nil {
		h.log.Error("credit check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if !ok {
		return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Error: "insufficient credits"})
	}

	if err := h.campaignService.SetStatus(c.Context(), orgID, id, models.CampaignStatusRunning, &userID, "user"); err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	result := h.orchestrator.Run(c.Context(), orgID, services.RunConfig{
		CampaignID:    id,
		ICP:           campaign.ICPConfig,
		MessagingTone: campaign.MessagingTone,
		Goal:          campaign.Goal,
		LeadCount:     leadCount,
	})

	if result.CreditsUsed > 0 {
		consumed, err := h.creditService.Consume(c.Context(), orgID, result.CreditsUsed)
		if err != nil || !consumed {
			h.log.Warn("credit settle failed",
				zap.String("organization_id", orgID.String()),
				zap.Int("credits_used", result.CreditsUsed),
				zap.Error(err),
			)
			result.Success = false
			if result.Err == "" {
				result.Err = "failed to settle credits"
			}
		}
	}

	settled := models.CampaignStatusCompleted
	if !result.Success {
		settled = models.CampaignStatusDraft
	}
	if err := h.campaignService.SetStatus(c.Context(), orgID, id, settled, &userID, "system"); err != nil {
		h.log.Error("failed to settle campaign status",
			zap.String("campaign_id", id.String()), zap.Error(err))
	}

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(result)
}

func (h *CampaignHandler) ListRuns(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	orgID := middleware.GetOrgID(c)
	runs, err := h.runRepo.ListByCampaign(c.Context(), orgID, id)
	if err != nil {
		h.log.Error("list runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: runs})
}
