package domain

// Role is the access level attached to a session
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the authenticated user persisted in the `user` cookie
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
