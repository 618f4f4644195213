package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/prospectr/backend/internal/auth"
	"github.com/prospectr/backend/internal/config"
	"github.com/prospectr/backend/internal/http/dto"
	"github.com/prospectr/backend/internal/repositories"
)

type AuthHandler struct {
	userRepo *repositories.UserRepo
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, cfg: cfg, log: log}
}

// ExchangeToken trades a long-lived API key for a short-lived JWT. The
// key itself never hits the database: only its SHA-256 hash is looked up.
func (h *AuthHandler) ExchangeToken(c *fiber.Ctx) error {
	var req dto.AuthTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.APIKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "api_key is required"})
	}

	user, err := h.userRepo.GetByAPIKeyHash(c.Context(), auth.HashAPIKey(req.APIKey))
	if err != nil {
		h.log.Debug("api key lookup failed", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid api key"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.OrganizationID, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	_ = h.userRepo.Touch(c.Context(), user.ID)

	return c.JSON(dto.AuthResponse{
		Token: token,
		User:  user,
	})
}
