package models

// Role is the permission level attached to a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is one entry of the static user table.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialize
	Role         Role   `json:"role"`
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
