package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-market/marketplace-service/internal/api/dto"
	"github.com/campus-market/marketplace-service/internal/auth"
	"github.com/campus-market/marketplace-service/internal/service"
	"github.com/campus-market/marketplace-service/internal/validation"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

// PostsHandler manages marketplace post endpoints.
type PostsHandler struct {
	listings *service.ListingService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(listingService *service.ListingService) *PostsHandler {
	return &PostsHandler{listings: listingService}
}

// CreatePost handles POST /api/posts.
func (h *PostsHandler) CreatePost(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if violations := validation.ValidatePost(payload); len(violations) > 0 {
		return apperrors.NewValidationError(strings.Join(violations, ", "), nil)
	}

	var authorID string
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.User != nil {
		authorID = principal.User.ID
	}

	input := service.PostCreateInput{
		Title:        dto.PayloadString(payload, "title"),
		Description:  dto.PayloadString(payload, "description"),
		Images:       dto.PayloadStrings(payload, "images"),
		ExchangeType: dto.PayloadString(payload, "exchange_type"),
		Condition:    dto.PayloadString(payload, "condition"),
		Location:     dto.PayloadString(payload, "location"),
		Categories:   dto.PayloadStrings(payload, "categories"),
	}
	post, err := h.listings.CreatePost(c.Context(), authorID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewPostResponse(post)})
}

// ListPosts handles GET /api/posts.
func (h *PostsHandler) ListPosts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	posts, page, limit, total, err := h.listings.ListPosts(c.Context(), page, limit)
	if err != nil {
		return err
	}

	items := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, dto.NewPostResponse(&posts[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.PostListResponse{
			Posts: items,
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// GetPost handles GET /api/posts/:id.
func (h *PostsHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.listings.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewPostResponse(post)})
}

// ListMyPosts handles GET /api/users/profile/posts.
func (h *PostsHandler) ListMyPosts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized, no session")
	}

	posts, err := h.listings.ListUserPosts(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, dto.NewPostResponse(&posts[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// DeletePost handles DELETE /api/posts/:id.
func (h *PostsHandler) DeletePost(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized, no session")
	}

	if err := h.listings.DeletePost(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Post deleted successfully"}})
}
