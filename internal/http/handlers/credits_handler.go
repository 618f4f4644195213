package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/prospectr/backend/internal/http/dto"
	"github.com/prospectr/backend/internal/middleware"
	"github.com/prospectr/backend/internal/services"
)

type CreditsHandler struct {
	creditService *services.CreditService
	log           *zap.Logger
}

func NewCreditsHandler(creditService *services.CreditService, log *zap.Logger) *CreditsHandler {
	return &CreditsHandler{creditService: creditService, log: log}
}

func (h *CreditsHandler) GetBalance(c *fiber.Ctx) error {
	orgID := middleware.GetOrgID(c)

	balance, err := h.creditService.Balance(c.Context(), orgID)
	if err != nil {
		h.log.Error("credit balance failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: balance})
}
