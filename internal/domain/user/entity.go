package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Sees every user's monthly report
	RoleManager Role = "manager" // Same access as user for now
	RoleUser    Role = "user"    // Regular member
)

// Roles lists every assignable role.
var Roles = []string{string(RoleAdmin), string(RoleManager), string(RoleUser)}

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    *string // nil for accounts that only sign in with Google
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword checks if user can sign in with email and password
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
