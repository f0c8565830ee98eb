package dto

import (
	"github.com/filmorate/filmorate_app/internal/core/domain"
)

// NewUserRequest defines the data required to create a user.
type NewUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Login    string `json:"login" binding:"required"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" binding:"required"`
}

// UpdateUserRequest defines the data for updating a user. The id travels in
// the body, matching the public API.
type UpdateUserRequest struct {
	ID       int    `json:"id" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Login    string `json:"login" binding:"required"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" binding:"required"`
}

// UserResponse is the external user representation.
type UserResponse struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

// ToDomain maps the request to a domain user.
func (r NewUserRequest) ToDomain() domain.User {
	return domain.User{
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday.Time,
	}
}

// ToDomain maps the update request to a domain user, keeping its id.
func (r UpdateUserRequest) ToDomain() domain.User {
	return domain.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday.Time,
	}
}

// ToUserResponse converts a domain user to the response shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: NewDate(u.Birthday),
	}
}

// ToUserListResponse converts a slice of domain users to response shapes.
func ToUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
