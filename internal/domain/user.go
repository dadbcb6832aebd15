package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type User struct {
	ID           int64
	Email        string
	Name         string
	PhoneNumber  string
	PasswordHash string // bcrypt; never the plaintext
	Role         Role
	CreatedAt    time.Time
}
