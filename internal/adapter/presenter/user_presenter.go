package presenter

import (
	authdto "github.com/warf-hq/warf-backend/internal/adapter/dto/auth"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// ToUserResponse converts a user entity to its response DTO
func ToUserResponse(u *entities.User) authdto.UserResponse {
	return authdto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName(),
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserListResponse converts a slice of users
func ToUserListResponse(users []*entities.User) []authdto.UserResponse {
	out := make([]authdto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
