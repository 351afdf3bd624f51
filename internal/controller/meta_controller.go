package controller

import (
	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/pkg/serverutils"
	"github.com/KhadijaXD/NoteNova/internal/service"

	"github.com/gofiber/fiber/v2"
)

const appVersion = "1.0.0"

type IMetaController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	AiInfo(ctx *fiber.Ctx) error
	ProviderStatus(ctx *fiber.Ctx) error
}

type metaController struct {
	aiService service.IAiService
}

func NewMetaController(aiService service.IAiService) IMetaController {
	return &metaController{aiService: aiService}
}

func (c *metaController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/ai-info", c.AiInfo)
	r.Get("/ollama-status", c.ProviderStatus)
}

func (c *metaController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", dto.HealthResponse{Status: "ok", Version: appVersion}))
}

func (c *metaController) AiInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("AI provider info", c.aiService.Info(ctx.Context())))
}

func (c *metaController) ProviderStatus(ctx *fiber.Ctx) error {
	info := c.aiService.Info(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("AI provider status", dto.ProviderStatusResponse{
		Running:  info.Available,
		Provider: info.Provider,
		Model:    info.Model,
	}))
}
