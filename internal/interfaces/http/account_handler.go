package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmarket/market-api/internal/application/account"
	"github.com/freshmarket/market-api/internal/application/dto"
)

// AccountHandler handles registration, confirmation, login and password
// reset. Each failure class maps to its own status code.
type AccountHandler struct {
	uc *account.UseCase
}

// NewAccountHandler builds the handler.
func NewAccountHandler(uc *account.UseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// statusFor maps a failure class to the HTTP status of the response.
func statusFor(class account.Class) int {
	switch class {
	case account.ClassUnauthorized:
		return fiber.StatusUnauthorized
	case account.ClassDependency, account.ClassInternal:
		return fiber.StatusInternalServerError
	default:
		// Validation, not-found, lockout and two-factor are client errors.
		return fiber.StatusBadRequest
	}
}

func respondFailure(c *fiber.Ctx, fail *account.Failure) error {
	if len(fail.Errors) > 0 {
		return c.Status(statusFor(fail.Class)).JSON(dto.ValidationErrorResponse{Errors: fail.Errors})
	}
	return c.Status(statusFor(fail.Class)).JSON(dto.MessageResponse{Message: fail.Message})
}

// Register godoc
// @Summary      Register a new user
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password, optional role"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/accounts/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: []string{"Invalid request body."}})
	}
	out, fail := h.uc.Register(c.UserContext(), in)
	if fail != nil {
		return respondFailure(c, fail)
	}
	return c.JSON(out)
}

// ConfirmEmail godoc
// @Summary      Confirm an email address
// @Tags         accounts
// @Produce      json
// @Param        token  query  string  true  "confirmation token"
// @Param        email  query  string  true  "email address"
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.MessageResponse
// @Router       /api/accounts/confirmemail [get]
func (h *AccountHandler) ConfirmEmail(c *fiber.Ctx) error {
	out, fail := h.uc.ConfirmEmail(c.UserContext(), c.Query("token"), c.Query("email"))
	if fail != nil {
		return respondFailure(c, fail)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Log in
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /api/accounts/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body."})
	}
	out, fail := h.uc.Login(c.UserContext(), in)
	if fail != nil {
		return respondFailure(c, fail)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Request a password reset email
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Router       /api/accounts/forgotpassword [post]
func (h *AccountHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body."})
	}
	out, fail := h.uc.ForgotPassword(c.UserContext(), in)
	if fail != nil {
		return respondFailure(c, fail)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Apply a password reset token
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "email, token, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Router       /api/accounts/resetpassword [post]
func (h *AccountHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body."})
	}
	out, fail := h.uc.ResetPassword(c.UserContext(), in)
	if fail != nil {
		return respondFailure(c, fail)
	}
	return c.JSON(out)
}
