package domain

import "time"

// ChatMessage is a single entry in a chat transcript.
type ChatMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// Chat is a conversation thread with another user. Passive shape.
type Chat struct {
	ID               string
	FriendID         string
	FriendProfilePic string
	Messages         []ChatMessage
	TimeUpdated      time.Time
}
