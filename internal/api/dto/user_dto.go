package dto

import (
	"time"

	"github.com/campus-market/marketplace-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	NyuID    string `json:"nyu_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is the created-account representation. The password is
// never included.
type RegisterResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	AccountName string `json:"account_name"`
}

// ProfileResponse is the user representation for profile reads and updates.
type ProfileResponse struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	AccountName  string    `json:"account_name"`
	Bio          string    `json:"bio"`
	NyuID        string    `json:"nyu_id"`
	ProfileImage string    `json:"profile_image"`
	UsageType    []string  `json:"usage_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfileResponse shapes a user for the wire, excluding the password hash.
func NewProfileResponse(user *domain.User) ProfileResponse {
	usage := user.UsageType
	if usage == nil {
		usage = []string{}
	}
	return ProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		AccountName:  user.AccountName,
		Bio:          user.Bio,
		NyuID:        user.NyuID,
		ProfileImage: user.ProfileImage,
		UsageType:    usage,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
