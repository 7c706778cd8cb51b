package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-market/marketplace-service/internal/api/dto"
	"github.com/campus-market/marketplace-service/internal/auth"
	"github.com/campus-market/marketplace-service/internal/service"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

// TradesHandler manages trade endpoints.
type TradesHandler struct {
	trades *service.TradeService
}

// NewTradesHandler constructs handler.
func NewTradesHandler(tradeService *service.TradeService) *TradesHandler {
	return &TradesHandler{trades: tradeService}
}

// CreateTrade handles POST /api/trades.
func (h *TradesHandler) CreateTrade(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized, no session")
	}

	var req dto.TradeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PostID == "" {
		return apperrors.NewValidationError("post_id is required", nil)
	}

	trade, err := h.trades.InitiateTrade(c.Context(), principal.User.ID, service.TradeCreateInput{
		PostID:       req.PostID,
		ExchangeType: req.ExchangeType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewTradeResponse(trade)})
}

// ListMyTrades handles GET /api/users/profile/trades.
func (h *TradesHandler) ListMyTrades(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized, no session")
	}

	trades, err := h.trades.ListUserTrades(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.TradeResponse, 0, len(trades))
	for i := range trades {
		items = append(items, dto.NewTradeResponse(&trades[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}
