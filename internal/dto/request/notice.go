package request

type CreateNoticeRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=200"`
	Body     string `json:"body" validate:"required,min=2"`
	Audience string `json:"audience" validate:"omitempty,oneof=all students coaches staff"`
	Pinned   bool   `json:"pinned"`
}

type UpdateNoticeRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Body     *string `json:"body,omitempty" validate:"omitempty,min=2"`
	Audience *string `json:"audience,omitempty" validate:"omitempty,oneof=all students coaches staff"`
	Pinned   *bool   `json:"pinned,omitempty"`
}
