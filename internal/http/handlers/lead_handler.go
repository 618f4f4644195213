package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prospectr/backend/internal/http/dto"
	"github.com/prospectr/backend/internal/middleware"
	"github.com/prospectr/backend/internal/models"
	"github.com/prospectr/backend/internal/repositories"
)

type LeadHandler struct {
	leadRepo  *repositories.LeadRepo
	draftRepo *repositories.DraftRepo
	eventRepo *repositories.EventRepo
	log       *zap.Logger
}

func NewLeadHandler(
	leadRepo *repositories.LeadRepo,
	draftRepo *repositories.DraftRepo,
	eventRepo *repositories.EventRepo,
	log *zap.Logger,
) *LeadHandler {
	return &LeadHandler{leadRepo: leadRepo, draftRepo: draftRepo, eventRepo: eventRepo, log: log}
}

func (h *LeadHandler) ListByCampaign(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	orgID := middleware.GetOrgID(c)
	leads, err := h.leadRepo.ListByCampaign(c.Context(), orgID, campaignID)
	if err != nil {
		h.log.Error("list leads failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: leads})
}

func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid lead id"})
	}

	orgID := middleware.GetOrgID(c)
	lead, err := h.leadRepo.GetByID(c.Context(), orgID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "lead not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: lead})
}

func (h *LeadHandler) ListDrafts(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid lead id"})
	}

	orgID := middleware.GetOrgID(c)
	drafts, err := h.draftRepo.ListByLead(c.Context(), orgID, id)
	if err != nil {
		h.log.Error("list drafts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: drafts})
}

// ListEvents returns the lead's append-only stage history, oldest first.
func (h *LeadHandler) ListEvents(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid lead id"})
	}

	orgID := middleware.GetOrgID(c)
	if _, err := h.leadRepo.GetByID(c.Context(), orgID, id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "lead not found"})
	}

	events, err := h.eventRepo.ListByLead(c.Context(), id)
	if err != nil {
		h.log.Error("list lead events failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: events})
}

func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid lead id"})
	}

	var req dto.UpdateLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	orgID := middleware.GetOrgID(c)
	lead, err := h.leadRepo.GetByID(c.Context(), orgID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "lead not found"})
	}

	if !models.IsValidLeadTransition(lead.Status, req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid status transition from " + lead.Status + " to " + req.Status,
		})
	}

	if err := h.leadRepo.UpdateStatus(c.Context(), orgID, id, req.Status); err != nil {
		h.log.Error("update lead status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	_ = h.eventRepo.Append(c.Context(), &models.LeadEvent{
		LeadID:    id,
		EventType: models.LeadEventStatusChanged,
		Metadata: map[string]any{
			"from": lead.Status,
			"to":   req.Status,
		},
	})

	lead.Status = req.Status
	return c.JSON(dto.SuccessResponse{OK: true, Data: lead})
}
