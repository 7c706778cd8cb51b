package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-market/marketplace-service/internal/api/dto"
	"github.com/campus-market/marketplace-service/internal/auth"
	"github.com/campus-market/marketplace-service/internal/service"
	"github.com/campus-market/marketplace-service/internal/validation"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

// UsersHandler exposes registration, login and profile endpoints.
type UsersHandler struct {
	account    *service.AccountService
	validator  *validation.UserValidator
	cookieName string
	sessionTTL time.Duration
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accountService *service.AccountService, validator *validation.UserValidator, cookieName string, sessionTTL time.Duration) *UsersHandler {
	return &UsersHandler{
		account:    accountService,
		validator:  validator,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

// Register handles POST /register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NyuID == "" || req.Email == "" || req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("Missing required fields", nil)
	}

	user, err := h.account.Register(c.Context(), service.RegisterInput{
		NyuID:       req.NyuID,
		Email:       req.Email,
		AccountName: req.Username,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": dto.RegisterResponse{
			ID:          user.ID,
			Email:       user.Email,
			AccountName: user.AccountName,
		},
	})
}

// Login handles POST /login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Missing required fields", nil)
	}

	user, sessionID, err := h.account.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewProfileResponse(user),
	})
}

// Logout handles POST /logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authorized, no session")
	}
	if err := h.account.Logout(c.Context(), principal.SessionID); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Logged out successfully"}})
}

// GetProfile handles GET /api/users/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized, no session")
	}

	user, err := h.account.Profile(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewProfileResponse(user)})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized, no session")
	}

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if violations := h.validator.ValidateUpdate(payload); len(violations) > 0 {
		return apperrors.NewValidationError(strings.Join(violations, ", "), nil)
	}

	input := service.ProfileUpdateInput{
		Email:       dto.PayloadStringPtr(payload, "email"),
		AccountName: dto.PayloadStringPtr(payload, "account_name"),
		NyuID:       dto.PayloadStringPtr(payload, "nyu_id"),
		Bio:         dto.PayloadStringPtr(payload, "bio"),
		Password:    dto.PayloadStringPtr(payload, "password"),
	}
	user, err := h.account.UpdateProfile(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewProfileResponse(user)})
}
