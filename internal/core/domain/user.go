package domain

import "time"

// Role is the access level stored with a user and embedded into session tokens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims is the verified payload of a session token. It is produced by the
// token codec at login time and re-checked against the credential store on
// every protected request; it is never persisted server-side.
type Claims struct {
	UserID int64
	Role   Role
}
