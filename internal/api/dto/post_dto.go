package dto

import (
	"time"

	"github.com/campus-market/marketplace-service/internal/domain"
	"github.com/campus-market/marketplace-service/internal/repository"
)

// PostResponse is the wire representation of a marketplace post. Field names
// follow the persisted layout existing clients depend on.
type PostResponse struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Images       []string  `json:"images"`
	ExchangeType string    `json:"exchange_type"`
	Condition    string    `json:"condition"`
	Location     string    `json:"location"`
	Categories   []string  `json:"categories"`
	Status       string    `json:"status"`
	Favorites    int       `json:"favorites"`
	AuthorID     string    `json:"author_id,omitempty"`
	TimePosted   time.Time `json:"time_posted"`
	TimeUpdated  time.Time `json:"time_updated"`
}

// NewPostResponse shapes a post for the wire.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Description:  post.Description,
		Images:       post.Images,
		ExchangeType: post.ExchangeType,
		Condition:    post.Condition,
		Location:     post.Location,
		Categories:   post.Categories,
		Status:       string(post.Status),
		Favorites:    post.Favorites,
		AuthorID:     post.AuthorID,
		TimePosted:   post.TimePosted,
		TimeUpdated:  post.TimeUpdated,
	}
}

// PostListResponse is a paged post listing.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

// SearchResultResponse is one search hit with its author's display name.
type SearchResultResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	AuthorID    string    `json:"author_id,omitempty"`
	AuthorName  string    `json:"author_name"`
	Favorites   int       `json:"favorites"`
	TimePosted  time.Time `json:"time_posted"`
}

// NewSearchResultResponse shapes a search hit for the wire.
func NewSearchResultResponse(res repository.SearchResult) SearchResultResponse {
	return SearchResultResponse{
		ID:          res.Post.ID,
		Title:       res.Post.Title,
		Description: res.Post.Description,
		Images:      res.Post.Images,
		AuthorID:    res.Post.AuthorID,
		AuthorName:  res.AuthorName,
		Favorites:   res.Post.Favorites,
		TimePosted:  res.Post.TimePosted,
	}
}
