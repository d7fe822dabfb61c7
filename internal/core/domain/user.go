package domain

import "time"

// User roles. Guests are placeholder rows created per guest transaction.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// User represents a registered sender or an ephemeral guest row.
type User struct {
	UserID       int64     `json:"userID"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsGuest      bool      `json:"isGuest"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user may perform settlement operations.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
