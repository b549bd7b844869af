package httpserver

import (
	"time"

	"shopfront/internal/domain"
)

// userResponse is the wire shape for users; credential material never
// leaves the facade.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      role,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type cartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalCents int64             `json:"totalCents"`
	ItemCount  int               `json:"itemCount"`
}
