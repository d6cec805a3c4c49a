package handler

import (
	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

type verifyLinkRequest struct {
	Token string `json:"token"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type setPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Signup godoc
// @Summary Register a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.SignupInput true "account"
// @Success 201 {object} service.AuthResult
// @Failure 400 {object} middleware.ErrorPayload
// @Failure 409 {object} middleware.ErrorPayload
// @Router /api/auth/signup [post]
func Signup(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SignupInput
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		res, err := svc.Signup(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} middleware.ErrorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in loginRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		res, err := svc.Login(c.UserContext(), in.Email, in.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// RequestMagicLink godoc
// @Summary Email a login link and one-time code
// @Description Always answers 202 so the endpoint cannot be used to discover accounts.
// @Tags auth
// @Accept json
// @Success 202
// @Router /api/auth/magic-link [post]
func RequestMagicLink(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in magicLinkRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		if err := svc.RequestMagicLink(c.UserContext(), in.Email); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "sent"})
	}
}

// VerifyMagicLink godoc
// @Summary Exchange a magic link token for a session
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} middleware.ErrorPayload
// @Router /api/auth/magic-link/verify [post]
func VerifyMagicLink(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in verifyLinkRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		res, err := svc.VerifyMagicLink(c.UserContext(), in.Token)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// VerifyCode godoc
// @Summary Exchange an emailed one-time code for a session
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} middleware.ErrorPayload
// @Router /api/auth/otp/verify [post]
func VerifyCode(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in verifyCodeRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		res, err := svc.VerifyCode(c.UserContext(), in.Email, in.Code)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Router /api/auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Me(c.UserContext(), middleware.GetPrincipal(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// SetPassword godoc
// @Summary Set or change the password
// @Tags auth
// @Accept json
// @Security BearerAuth
// @Success 204
// @Router /api/auth/password [post]
func SetPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in setPasswordRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		if err := svc.SetPassword(c.UserContext(), middleware.GetPrincipal(c), in.CurrentPassword, in.NewPassword); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
