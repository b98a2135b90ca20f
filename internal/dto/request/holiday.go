package request

type CreateHolidayRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"required,min=2,max=200"`
	Type        string `json:"type" validate:"omitempty,oneof=holiday maintenance"`
}
