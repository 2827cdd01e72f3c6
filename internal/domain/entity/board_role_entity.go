package entity

import "time"

// Role tags a board membership row. The first role for a board is always
// Owner; everyone added later joins as Editor.
type Role string

const (
	RoleOwner  Role = "Owner"
	RoleEditor Role = "Editor"
)

// BoardRole links one user to one board. (BoardID, UserID) is unique.
type BoardRole struct {
	ID      string    `json:"id"`
	BoardID string    `json:"boardId"`
	UserID  string    `json:"userId"`
	Role    Role      `json:"role"`
	AddedAt time.Time `json:"addedAt"`
}

// BoardMember is the share-page projection of a role row joined with its user.
type BoardMember struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	BoardRoleID string    `json:"boardRoleId"`
	AddedAt     time.Time `json:"addedAt"`
}

// Permission is the edit capability derived from a role row. Both current
// roles grant full edit rights; the enum exists so a future read-only tier
// does not have to rely on "role is not owner" inference.
type Permission int

const (
	PermissionNone Permission = iota
	PermissionFullAccess
)

// PermissionOf derives the capability of a role value.
func PermissionOf(r Role) Permission {
	switch r {
	case RoleOwner, RoleEditor:
		return PermissionFullAccess
	default:
		return PermissionNone
	}
}
