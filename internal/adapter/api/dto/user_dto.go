package dto

import (
	"time"

	"github.com/floravitalis/creatinamax/internal/domain/user"
)

// UserResponse representa os dados de um usuário nas respostas da API
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateUserRequest representa os dados para criação de usuário
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserStatusRequest representa os dados para alteração de status de usuário
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserListResponse converte uma lista de entidades User para UserResponse
func ToUserListResponse(users []*user.User) []UserResponse {
	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, ToUserResponse(u))
	}
	return response
}
