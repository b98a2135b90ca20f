package entity

import "github.com/google/uuid"

type NoticeAudience string

const (
	NoticeAudienceAll      NoticeAudience = "all"
	NoticeAudienceStudents NoticeAudience = "students"
	NoticeAudienceCoaches  NoticeAudience = "coaches"
	NoticeAudienceStaff    NoticeAudience = "staff"
)

type Notice struct {
	Base
	Title     string         `db:"title"`
	Body      string         `db:"body"`
	Audience  NoticeAudience `db:"audience"`
	Pinned    bool           `db:"pinned"`
	CreatedBy uuid.UUID      `db:"created_by"`
}
