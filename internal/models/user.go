package models

import "time"

type User struct {
	ID           string
	Nome         string
	Email        string
	PasswordHash []byte
	Endereco     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the server-side record of an issued token. The JWT itself
// carries the expiry, the row makes the token revocable before that.
type Session struct {
	ID        string
	UserID    string
	TokenHash []byte
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	ExpiresAt time.Time
}
