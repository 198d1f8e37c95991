package controller

import (
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
}

type userController struct {
	authService service.IAuthService
}

func NewUserController(authService service.IAuthService) IUserController {
	return &userController{
		authService: authService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	r.Post("/users", c.Register)
}

func (c *userController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body", nil)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("User registered successfully", res))
}
