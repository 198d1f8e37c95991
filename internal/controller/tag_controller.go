package controller

import (
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type tagController struct {
	tagService service.ITagService
}

func NewTagController(tagService service.ITagService) ITagController {
	return &tagController{
		tagService: tagService,
	}
}

// Tags are global and unauthenticated; the listing mounts at the root.
func (c *tagController) RegisterRoutes(r fiber.Router) {
	r.Get("/tags", c.List)
}

func (c *tagController) List(ctx *fiber.Ctx) error {
	search := ctx.Query("search")

	res, err := c.tagService.List(ctx.Context(), search)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tags", res))
}
