package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           entity.UserRole `json:"role"`
	QRCode         string          `json:"qr_code"`
	ProfilePicture *string         `json:"profile_picture,omitempty"`
	Specialization *string         `json:"specialization,omitempty"`
	Schedule       *string         `json:"schedule,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		QRCode:         user.QRCode,
		ProfilePicture: user.ProfilePicture,
		Specialization: user.Specialization,
		Schedule:       user.Schedule,
		CreatedAt:      user.CreatedAt,
	}
}
