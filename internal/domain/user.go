package domain

import "time"

// User is the domain model for registered students.
type User struct {
	ID           string
	Email        string
	AccountName  string
	PasswordHash string
	Bio          string
	NyuID        string
	ProfileImage string
	UsageType    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
