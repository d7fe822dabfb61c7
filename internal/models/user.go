package models

import "time"

// User is the persistence shape of a sender account or guest placeholder row.
type User struct {
	UserID       int64
	Email        string
	PasswordHash string
	Role         string
	IsGuest      bool
	GuestSeq     *int
	CreatedAt    time.Time
}
