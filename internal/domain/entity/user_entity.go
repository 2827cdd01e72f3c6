package entity

import "time"

// User is the aggregate root for the credential store. PasswordHash and
// PasswordSalt stay out of JSON; a user without a password record cannot
// log in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatarUrl"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasPassword reports whether login is possible for this user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != "" && u.PasswordSalt != ""
}
