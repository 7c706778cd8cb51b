package dto

import (
	"time"

	"github.com/campus-market/marketplace-service/internal/domain"
)

// RoommateResponse is the wire representation of a roommate listing. The
// camelCase keys mirror the layout existing clients depend on.
type RoommateResponse struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Images       []string  `json:"images"`
	PlacesToLive string    `json:"placesToLive"`
	Region       string    `json:"region"`
	OnCampus     bool      `json:"onCampus"`
	Year         int       `json:"year"`
	Status       string    `json:"status"`
	Favorites    int       `json:"favorites"`
	AuthorID     string    `json:"authorId,omitempty"`
	TimePosted   time.Time `json:"timePosted"`
	TimeUpdated  time.Time `json:"timeUpdate"`
}

// NewRoommateResponse shapes a roommate listing for the wire.
func NewRoommateResponse(roommate *domain.Roommate) RoommateResponse {
	return RoommateResponse{
		ID:           roommate.ID,
		Title:        roommate.Title,
		Description:  roommate.Description,
		Images:       roommate.Images,
		PlacesToLive: roommate.PlacesToLive,
		Region:       roommate.Region,
		OnCampus:     roommate.OnCampus,
		Year:         roommate.Year,
		Status:       string(roommate.Status),
		Favorites:    roommate.Favorites,
		AuthorID:     roommate.AuthorID,
		TimePosted:   roommate.TimePosted,
		TimeUpdated:  roommate.TimeUpdated,
	}
}
