package controller

import (
	"baristabox-be/internal/pkg/serverutils"
	"baristabox-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
}

type healthController struct {
	indexService service.IIndexService
}

func NewHealthController(indexService service.IIndexService) IHealthController {
	return &healthController{indexService: indexService}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{
		"status": "up",
		"index":  c.indexService.Status(),
	}))
}
