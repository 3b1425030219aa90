package controller

import (
	"medstory-be/internal/dto"
	"medstory-be/internal/pkg/serverutils"
	"medstory-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{userService: userService}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/user/v1")
	h.Use(auth)
	h.Get("profile", c.GetProfile)
	h.Put("profile", c.UpdateProfile)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	uid := serverutils.GetUserId(ctx)

	profile, err := c.userService.ReadProfile(ctx.UserContext(), uid)
	if err != nil {
		return err
	}
	if profile == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", dto.ProfileResponse{Uid: profile.Uid, Name: profile.Name}))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	uid := serverutils.GetUserId(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	profile, err := c.userService.SaveProfile(ctx.UserContext(), uid, req.Name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", dto.ProfileResponse{Uid: profile.Uid, Name: profile.Name}))
}
