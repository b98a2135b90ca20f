package request

type CreateSlotRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required,gt=0"`
	Status    string `json:"status" validate:"omitempty,oneof=open closed maintenance"`
}

type UpdateSlotRequest struct {
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=open closed maintenance"`
}
