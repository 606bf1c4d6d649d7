package dto

import (
	"time"

	"github.com/hsaito/project-tracking-api/internal/models"
)

// dateLayout is the wire format for date-only fields.
const dateLayout = "2006-01-02"

// UserDTO represents a user's public profile in API responses
type UserDTO struct {
	ID        uint64  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date"`
	Gender    string  `json:"gender"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: formatDate(user.BirthDate),
		Gender:    user.Gender,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// auditEmail renders an audit reference as the user's email, or null once
// the referenced user is gone.
func auditEmail(user *models.User) *string {
	if user == nil || user.ID == 0 {
		return nil
	}
	email := user.Email
	return &email
}
