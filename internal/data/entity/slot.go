package entity

import (
	"time"
)

type SlotStatus string

const (
	SlotStatusOpen        SlotStatus = "open"
	SlotStatusClosed      SlotStatus = "closed"
	SlotStatusMaintenance SlotStatus = "maintenance"
)

type Slot struct {
	Base
	StartTime   time.Time  `db:"start_time"`
	EndTime     time.Time  `db:"end_time"`
	Capacity    int        `db:"capacity"`
	BookedCount int        `db:"booked_count"` // maintained atomically, never above Capacity
	Status      SlotStatus `db:"status"`
}

// IsFull reports whether the slot has no seats left
func (s *Slot) IsFull() bool {
	return s.BookedCount >= s.Capacity
}
