package response

import "time"

type StatsResponse struct {
	TotalUsers        int64              `json:"total_users"`
	TotalSlots        int64              `json:"total_slots"`
	TotalBookings     int64              `json:"total_bookings"`
	AttendedBookings  int64              `json:"attended_bookings"`
	CancelledBookings int64              `json:"cancelled_bookings"`
	MissedBookings    int64              `json:"missed_bookings"`
	NoShowRate        float64            `json:"no_show_rate"`
	TopOffenders      []OffenderResponse `json:"top_offenders"`
	OccupancyHeatmap  []HeatmapBucket    `json:"occupancy_heatmap"`
	TrendingSlots     []TrendingSlot     `json:"trending_slots"`
}

type OffenderResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Missed int64  `json:"missed"`
}

// HeatmapBucket is occupancy for one day-of-week / hour-of-day cell
type HeatmapBucket struct {
	Weekday   int     `json:"weekday"` // 0 = Sunday
	Hour      int     `json:"hour"`
	Bookings  int64   `json:"bookings"`
	Capacity  int64   `json:"capacity"`
	Occupancy float64 `json:"occupancy"`
}

type TrendingSlot struct {
	SlotID    string    `json:"slot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Bookings  int64     `json:"bookings"`
}
