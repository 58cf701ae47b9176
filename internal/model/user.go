package model

// Role is the permission level of an authenticated user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// User is the account attached to an admin session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Initial returns the first letter of the user's name for avatar badges.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(r)
	}
	return "?"
}
