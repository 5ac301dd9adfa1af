package user

import "time"

type User struct {
	Id          int
	Uid         string
	Username    string
	Email       string
	DisplayName string
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash string
	CreatedAt    time.Time
}
