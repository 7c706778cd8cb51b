package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campus-market/marketplace-service/internal/api/dto"
	"github.com/campus-market/marketplace-service/internal/auth"
	"github.com/campus-market/marketplace-service/internal/service"
	"github.com/campus-market/marketplace-service/internal/validation"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

// RoommatesHandler manages roommate listing endpoints.
type RoommatesHandler struct {
	listings *service.ListingService
	logger   *zap.Logger
}

// NewRoommatesHandler constructs handler.
func NewRoommatesHandler(listingService *service.ListingService, logger *zap.Logger) *RoommatesHandler {
	return &RoommatesHandler{listings: listingService, logger: logger}
}

// CreateRoommate handles POST /api/roommates. A missing session is tolerated:
// the listing is stored without an author reference.
func (h *RoommatesHandler) CreateRoommate(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if violations := validation.ValidateRoommate(payload); len(violations) > 0 {
		return apperrors.NewValidationError(strings.Join(violations, ", "), nil)
	}

	var authorID string
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.User != nil {
		authorID = principal.User.ID
	} else {
		h.logger.Warn("roommate listing created without author")
	}

	input := service.RoommateCreateInput{
		Title:        dto.PayloadString(payload, "title"),
		Description:  dto.PayloadString(payload, "description"),
		Images:       dto.PayloadStrings(payload, "images"),
		PlacesToLive: dto.PayloadString(payload, "placesToLive"),
		Region:       dto.PayloadString(payload, "region"),
		OnCampus:     dto.PayloadBool(payload, "onCampus"),
		Year:         dto.PayloadInt(payload, "year"),
	}
	roommate, err := h.listings.CreateRoommate(c.Context(), authorID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewRoommateResponse(roommate)})
}

// ListRoommates handles GET /api/roommates.
func (h *RoommatesHandler) ListRoommates(c *fiber.Ctx) error {
	roommates, err := h.listings.ListRoommates(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.RoommateResponse, 0, len(roommates))
	for i := range roommates {
		items = append(items, dto.NewRoommateResponse(&roommates[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// GetRoommate handles GET /api/roommates/:id.
func (h *RoommatesHandler) GetRoommate(c *fiber.Ctx) error {
	roommate, err := h.listings.GetRoommate(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewRoommateResponse(roommate)})
}
