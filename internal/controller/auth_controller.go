package controller

import (
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"
	"docchat-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, requireSession fiber.Handler)
	Signup(ctx *fiber.Ctx) error
	Signin(ctx *fiber.Ctx) error
	Signout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	sessions *session.Manager
}

func NewAuthController(service service.IAuthService, sessions *session.Manager) IAuthController {
	return &authController{service: service, sessions: sessions}
}

func (c *authController) RegisterRoutes(r fiber.Router, requireSession fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/signup", c.Signup)
	h.Post("/signin", c.Signin)
	h.Post("/signout", c.Signout)
	h.Get("/me", requireSession, c.Me)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	user, err := c.service.Signup(ctx.UserContext(), &req)
	if err != nil {
		return translateError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.AuthResponse{User: user})
}

func (c *authController) Signin(ctx *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	meta := session.Meta{
		IpAddress: ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}
	user, token, err := c.service.Signin(ctx.UserContext(), &req, meta)
	if err != nil {
		return translateError(err)
	}

	ctx.Cookie(c.sessions.Cookie(token))
	return ctx.JSON(dto.AuthResponse{User: user})
}

// Signout clears the cookie whether or not a session was present.
func (c *authController) Signout(ctx *fiber.Ctx) error {
	token := ctx.Cookies(c.sessions.CookieName())
	ctx.Cookie(c.sessions.ClearCookie())

	if err := c.service.Signout(ctx.UserContext(), token); err != nil {
		return translateError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse())
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	user, err := c.service.Me(ctx.UserContext(), userId)
	if err != nil {
		return translateError(err)
	}
	return ctx.JSON(dto.AuthResponse{User: user})
}
