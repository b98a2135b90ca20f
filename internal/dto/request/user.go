package request

type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Specialization *string `json:"specialization,omitempty" validate:"omitempty,max=200"`
	Schedule       *string `json:"schedule,omitempty" validate:"omitempty,max=500"`
}
