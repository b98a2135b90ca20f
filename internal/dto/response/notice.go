package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type NoticeResponse struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Body      string                `json:"body"`
	Audience  entity.NoticeAudience `json:"audience"`
	Pinned    bool                  `json:"pinned"`
	CreatedBy string                `json:"created_by"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func NoticeToResponse(notice *entity.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        notice.ID.String(),
		Title:     notice.Title,
		Body:      notice.Body,
		Audience:  notice.Audience,
		Pinned:    notice.Pinned,
		CreatedBy: notice.CreatedBy.String(),
		CreatedAt: notice.CreatedAt,
		UpdatedAt: notice.UpdatedAt,
	}
}
