package domain

import "time"

// RoommateStatus enumerates lifecycle states for roommate listings.
type RoommateStatus string

const (
	RoommateStatusSearching RoommateStatus = "searching"
	RoommateStatusMatched   RoommateStatus = "matched"
)

// Roommate is a roommate-search listing. AuthorID may be empty when the
// listing was submitted without an active session.
type Roommate struct {
	ID           string
	Title        string
	Description  string
	Images       []string
	PlacesToLive string
	Region       string
	OnCampus     bool
	Year         int
	Status       RoommateStatus
	Favorites    int
	AuthorID     string
	TimePosted   time.Time
	TimeUpdated  time.Time
}
