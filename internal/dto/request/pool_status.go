package request

type SetPoolStatusRequest struct {
	Status         string  `json:"status" validate:"required,oneof=open closed restricted"`
	Message        *string `json:"message,omitempty" validate:"omitempty,max=500"`
	EffectiveUntil *string `json:"effectiveUntil,omitempty"`
	MaintenanceID  *string `json:"maintenanceId,omitempty" validate:"omitempty,uuid4"`
}
