package domain

import "time"

// PostStatus enumerates lifecycle states for marketplace posts.
type PostStatus string

const (
	PostStatusAvailable PostStatus = "available"
	PostStatusPending   PostStatus = "pending"
	PostStatusTraded    PostStatus = "traded"
)

// Post is the aggregate for marketplace item listings.
type Post struct {
	ID           string
	Title        string
	Description  string
	Images       []string
	ExchangeType string
	Condition    string
	Location     string
	Categories   []string
	Status       PostStatus
	Favorites    int
	AuthorID     string
	TimePosted   time.Time
	TimeUpdated  time.Time
}
