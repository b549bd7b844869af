package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered shopper or back-office admin.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the session-facing view of a User. It never carries
// credential material and is what gets persisted across restarts.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityOf projects a stored User onto its session view.
func IdentityOf(u User) Identity {
	role := u.Role
	if role == "" {
		role = RoleUser
	}
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: role}
}
