package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prospectr/backend/internal/http/dto"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var predefinedTones = []MetaOption{
	{ID: "professional", Label: "Professional"},
	{ID: "friendly", Label: "Friendly"},
	{ID: "direct", Label: "Direct"},
	{ID: "consultative", Label: "Consultative"},
	{ID: "casual", Label: "Casual"},
}

var predefinedIndustries = []MetaOption{
	{ID: "saas", Label: "SaaS"},
	{ID: "fintech", Label: "Fintech"},
	{ID: "healthcare", Label: "Healthcare"},
	{ID: "ecommerce", Label: "E-commerce"},
	{ID: "manufacturing", Label: "Manufacturing"},
	{ID: "logistics", Label: "Logistics"},
	{ID: "education", Label: "Education"},
	{ID: "real-estate", Label: "Real Estate"},
	{ID: "marketing", Label: "Marketing & Advertising"},
	{ID: "consulting", Label: "Consulting"},
	{ID: "other", Label: "Other"},
}

var predefinedCompanySizes = []MetaOption{
	{ID: "1-10", Label: "1-10 employees"},
	{ID: "11-50", Label: "11-50 employees"},
	{ID: "51-200", Label: "51-200 employees"},
	{ID: "201-1000", Label: "201-1000 employees"},
	{ID: "1000+", Label: "1000+ employees"},
}

func (h *MetaHandler) GetTones(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedTones})
}

func (h *MetaHandler) GetIndustries(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedIndustries})
}

func (h *MetaHandler) GetCompanySizes(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedCompanySizes})
}
