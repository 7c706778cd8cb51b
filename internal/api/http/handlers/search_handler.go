package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-market/marketplace-service/internal/api/dto"
	"github.com/campus-market/marketplace-service/internal/service"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

// SearchHandler exposes keyword search over posts.
type SearchHandler struct {
	listings *service.ListingService
}

// NewSearchHandler constructs handler.
func NewSearchHandler(listingService *service.ListingService) *SearchHandler {
	return &SearchHandler{listings: listingService}
}

// Search handles GET /api/search?q=.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apperrors.NewValidationError("Search query is required", nil)
	}

	results, err := h.listings.Search(c.Context(), query)
	if err != nil {
		return err
	}

	items := make([]dto.SearchResultResponse, 0, len(results))
	for _, res := range results {
		items = append(items, dto.NewSearchResultResponse(res))
	}
	return c.JSON(fiber.Map{"success": true, "results": items})
}
