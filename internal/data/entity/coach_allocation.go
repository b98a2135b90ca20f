package entity

import (
	"time"

	"github.com/google/uuid"
)

type CoachAllocation struct {
	Base
	CoachID   uuid.UUID `db:"coach_id"`
	Date      time.Time `db:"date"` // unique, one coach assignment per day
	Notes     *string   `db:"notes"`
	CreatedBy uuid.UUID `db:"created_by"`
}
