package model

import (
	"time"
)

// Role is the closed set of account roles. Stored as text in the users
// table; Valid gates every write so no other value can enter the system.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleManager       Role = "Manager"
	RoleUser          Role = "User"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleManager, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	PasswordDigest string    `json:"-"` // Not exposed
	Active         bool      `json:"active"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Identity is the digest-free projection of a User. It is the only form of
// the account that crosses the authorization boundary.
type Identity struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Identity strips the credential fields from the user row.
func (u *User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Role:     u.Role,
	}
}
