package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// be serialized into API responses.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
