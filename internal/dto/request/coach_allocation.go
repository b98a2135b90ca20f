package request

type CreateCoachAllocationRequest struct {
	CoachID string  `json:"coachId" validate:"required,uuid4"`
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
