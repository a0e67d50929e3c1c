package controller

import (
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Append(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Regenerate(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
}

func NewMessageController(service service.IMessageService) IMessageController {
	return &messageController{service: service}
}

// RegisterRoutes expects r to be the session protected /chats group.
func (c *messageController) RegisterRoutes(r fiber.Router) {
	r.Post("/:id/messages", c.Append)
	r.Patch("/:id/messages/:mid", c.Edit)
	r.Post("/:id/messages/:mid/regenerate", c.Regenerate)
}

func (c *messageController) Append(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}

	var req dto.CreateMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AppendMessage(ctx.UserContext(), userId, chatId, &req)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}

func (c *messageController) Edit(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}
	messageId, err := serverutils.ParamUUID(ctx, "mid", messageNotFound)
	if err != nil {
		return err
	}

	var req dto.UpdateMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.EditMessage(ctx.UserContext(), userId, chatId, messageId, &req)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}

func (c *messageController) Regenerate(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}
	messageId, err := serverutils.ParamUUID(ctx, "mid", messageNotFound)
	if err != nil {
		return err
	}

	var req dto.RegenerateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RegenerateFrom(ctx.UserContext(), userId, chatId, messageId, &req)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}
