package controller

import (
	"strings"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

// RegisterRoutes expects r to be the session protected /chats group.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("", c.List)
	r.Post("", c.Create)
	r.Get("/:id", c.Show)
	r.Patch("/:id", c.Rename)
	r.Delete("/:id", c.Delete)
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListChats(ctx.UserContext(), userId)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateChat(ctx.UserContext(), userId, &req)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}

	res, err := c.service.GetChat(ctx.UserContext(), userId, chatId)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}

func (c *chatController) Rename(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}

	var req dto.UpdateChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RenameChat(ctx.UserContext(), userId, chatId, &req)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}

	if err := c.service.DeleteChat(ctx.UserContext(), userId, chatId); err != nil {
		return translateError(err)
	}
	return ctx.JSON(serverutils.MessageResponse("Chat deleted successfully"))
}
