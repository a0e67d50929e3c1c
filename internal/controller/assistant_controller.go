package controller

import (
	"io"
	"strings"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	UploadDocument(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

// RegisterRoutes expects r to be the session protected /chats group.
func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/:id/ask", c.Ask)
	r.Post("/:id/documents", c.UploadDocument)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}

	var req dto.AskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Question = strings.TrimSpace(req.Question)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), userId, chatId, &req)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}

func (c *assistantController) UploadDocument(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id", chatNotFound)
	if err != nil {
		return err
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewValidationError("file is required")
	}
	f, err := header.Open()
	if err != nil {
		return serverutils.NewValidationError("file could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return serverutils.NewValidationError("file could not be read")
	}

	res, err := c.service.UploadDocument(ctx.UserContext(), userId, chatId, header.Filename, data)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(res)
}
