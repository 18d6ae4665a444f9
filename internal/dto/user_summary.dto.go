package dto

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

// UserSummaryDTO is the user block returned by the auth endpoints.
type UserSummaryDTO struct {
	ID        uuid.UUID   `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

func NewUserSummary(u *models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}
