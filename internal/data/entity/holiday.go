package entity

import (
	"time"
)

type HolidayType string

const (
	HolidayTypeHoliday     HolidayType = "holiday"
	HolidayTypeMaintenance HolidayType = "maintenance"
)

type Holiday struct {
	BaseSimple
	Date        time.Time   `db:"date"` // unique calendar date
	Description string      `db:"description"`
	Type        HolidayType `db:"type"`
}
