package entity

import "time"

// Board is a collaborative canvas. Card contents live in the external
// collaboration service's room storage, never in our store; the board row
// only carries identity, the secret join token and bookkeeping timestamps.
type Board struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	SecretID     string     `json:"secretId"`
	LastOpenedAt *time.Time `json:"lastOpenedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// DefaultBoardName is applied when a board is created without a name.
const DefaultBoardName = "Untitled"
